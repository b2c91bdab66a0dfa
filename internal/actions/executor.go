// Package actions runs registered actions for any transport and wires the
// concrete actions from configuration.
package actions

import (
	"context"
	"time"

	"dialogue-actions/internal/common/config"
	apperrors "dialogue-actions/internal/common/errors"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/metrics"
	"dialogue-actions/internal/common/observability"
	"dialogue-actions/pkg/registry"
	"dialogue-actions/pkg/sdk"
)

// Executor resolves the requested action, enforces its timeout and records
// logs and metrics. Both the webhook and the job transport go through it.
type Executor struct {
	registry *registry.Registry
	cfg      *config.Config
	obs      *observability.Observability
	logger   logger.Logger
}

func NewExecutor(reg *registry.Registry, cfg *config.Config, obs *observability.Observability, log logger.Logger) *Executor {
	return &Executor{registry: reg, cfg: cfg, obs: obs, logger: log}
}

func (e *Executor) Registry() *registry.Registry { return e.registry }

// Execute runs req.NextAction. Failures are always returned as
// *errors.StandardError.
func (e *Executor) Execute(ctx context.Context, req *sdk.Request, requestID string) (*sdk.Response, *apperrors.StandardError) {
	name := req.NextAction
	log := e.logger.WithFields(map[string]interface{}{
		"action":    name,
		"senderId":  senderID(req),
		"requestId": requestID,
	})

	action, ok := e.registry.Get(name)
	if !ok {
		log.Warn("unknown action requested", nil)
		metrics.ActionFailures.WithLabelValues(name, string(apperrors.ErrCodeActionNotFound)).Inc()
		return nil, apperrors.NewActionNotFoundError(name)
	}

	log.Info("running action", map[string]interface{}{"intent": req.Tracker.LatestIntent()})
	metrics.ActionRuns.WithLabelValues(name).Inc()

	timeout := config.GetDuration(config.GetActionConfig(e.cfg, name).Timeout)
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := sdk.Run(runCtx, action, req)
	elapsed := time.Since(start)
	metrics.ActionDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		stdErr := apperrors.Normalize(err)
		stdErr.Action = name
		metrics.ActionFailures.WithLabelValues(name, string(stdErr.Code)).Inc()
		e.obs.RecordActionProcessed(ctx, name, "failed")
		e.obs.RecordActionDuration(ctx, name, elapsed, "failed")
		log.Error("action failed", map[string]interface{}{
			"errorCode":  string(stdErr.Code),
			"details":    stdErr.Details,
			"durationMs": elapsed.Milliseconds(),
		})
		return nil, stdErr
	}

	e.obs.RecordActionProcessed(ctx, name, "completed")
	e.obs.RecordActionDuration(ctx, name, elapsed, "completed")
	log.Info("action completed", map[string]interface{}{
		"events":     len(resp.Events),
		"messages":   len(resp.Responses),
		"durationMs": elapsed.Milliseconds(),
	})
	return resp, nil
}

func senderID(req *sdk.Request) string {
	if req.SenderID != "" {
		return req.SenderID
	}
	return req.Tracker.SenderID
}
