package server

import (
	"context"
	"time"

	"dialogue-actions/internal/actions"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Options configures SetupRouter.
type Options struct {
	WebhookPath string
	Version     string
	Executor    *actions.Executor
	Validator   *validation.SchemaValidator
	Checks      map[string]ReadinessCheck
	Logger      logger.Logger
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(opts.Logger))

	webhookPath := opts.WebhookPath
	if webhookPath == "" {
		webhookPath = "/webhook"
	}

	r.POST(webhookPath, webhookHandler(opts.Executor, opts.Validator, opts.Logger))
	r.GET("/actions", actionsHandler(opts.Executor, opts.Version))
	r.GET("/health", healthHandler(opts.Version))
	r.GET("/ready", readyHandler(opts.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// requestID propagates X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  c.GetString(requestIDKey),
		})
	}
}

func statusJSON(c *gin.Context, code int, status string) {
	c.JSON(code, gin.H{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
