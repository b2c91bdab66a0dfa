package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dialogue-actions/internal/actions"
	apperrors "dialogue-actions/internal/common/errors"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/validation"
	"dialogue-actions/pkg/sdk"

	"github.com/gin-gonic/gin"
)

// POST /webhook
func webhookHandler(exec *actions.Executor, validator *validation.SchemaValidator, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString(requestIDKey)

		body, err := c.GetRawData()
		if err != nil {
			abortWithError(c, apperrors.NewInvalidRequestError("unreadable body: "+err.Error()))
			return
		}

		if validator != nil {
			if res := validator.ValidateBytes(body); !res.Valid {
				log.Warn("rejected webhook body", map[string]interface{}{
					"requestId": requestID,
					"errors":    res.GetErrorMessages(),
				})
				stdErr := apperrors.NewInvalidRequestError("request does not match schema")
				stdErr.Metadata = map[string]interface{}{"violations": res.GetErrorMessages()}
				abortWithError(c, stdErr)
				return
			}
		}

		var req sdk.Request
		if err := json.Unmarshal(body, &req); err != nil {
			abortWithError(c, apperrors.NewInvalidRequestError(err.Error()))
			return
		}

		resp, stdErr := exec.Execute(c.Request.Context(), &req, requestID)
		if stdErr != nil {
			abortWithError(c, stdErr)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func abortWithError(c *gin.Context, stdErr *apperrors.StandardError) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(stdErr.Code), stdErr)
}

// GET /actions
func actionsHandler(exec *actions.Executor, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, exec.Registry().Catalog(version))
	}
}

// GET /health
func healthHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"time":    time.Now().Format(time.RFC3339),
		})
	}
}

// GET /ready
func readyHandler(checks map[string]ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		failed := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "failed": failed})
			return
		}
		statusJSON(c, http.StatusOK, "ready")
	}
}
