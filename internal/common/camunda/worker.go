// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	apperrors "dialogue-actions/internal/common/errors"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/pkg/sdk"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Executor runs one action request.
type Executor interface {
	Execute(ctx context.Context, req *sdk.Request, requestID string) (*sdk.Response, *apperrors.StandardError)
}

// JobType is the job type an action is published under.
func JobType(prefix, action string) string {
	return prefix + action
}

// ActionJobHandler turns jobs into action requests. Job variables carry the
// same document as the webhook body; next_action defaults to the action the
// job type names.
type ActionJobHandler struct {
	executor   Executor
	errHandler *apperrors.JobErrorHandler
	retry      *RetryConfig
	timeout    time.Duration
	logger     logger.Logger
}

func NewActionJobHandler(exec Executor, timeout time.Duration, log logger.Logger) *ActionJobHandler {
	return &ActionJobHandler{
		executor:   exec,
		errHandler: apperrors.NewJobErrorHandler(log),
		retry:      DefaultRetryConfig,
		timeout:    timeout,
		logger:     log,
	}
}

// Handle completes the job with the action response or reports the failure.
func (h *ActionJobHandler) Handle(client worker.JobClient, job entities.Job, action string) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
		"action":      action,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	resp, stdErr := h.process(ctx, job.Key, job.Variables, action)
	if stdErr != nil {
		h.errHandler.HandleJobError(ctx, client, job, stdErr)
		return
	}

	h.completeJob(ctx, client, job, resp)
}

func (h *ActionJobHandler) process(ctx context.Context, jobKey int64, variables, action string) (*sdk.Response, *apperrors.StandardError) {
	var req sdk.Request
	if strings.TrimSpace(variables) != "" {
		if err := json.Unmarshal([]byte(variables), &req); err != nil {
			stdErr := apperrors.NewInvalidRequestError("parse job variables: " + err.Error())
			stdErr.Action = action
			return nil, stdErr
		}
	}
	if req.NextAction == "" {
		req.NextAction = action
	}
	if req.NextAction != action {
		stdErr := apperrors.NewInvalidRequestError("job for " + action + " requested " + req.NextAction)
		stdErr.Action = action
		return nil, stdErr
	}
	return h.executor.Execute(ctx, &req, "job-"+strconv.FormatInt(jobKey, 10))
}

func (h *ActionJobHandler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, resp *sdk.Response) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(resp)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	err = Retry(ctx, h.retry, "complete job", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
	if err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.Key,
		"events":   len(resp.Events),
		"messages": len(resp.Responses),
	})
}

// CamundaWorker polls one job type.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	taskType string,
	action string,
	maxJobsActive int,
	handler *ActionJobHandler,
	log logger.Logger,
) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(client worker.JobClient, job entities.Job) {
			handler.Handle(client, job, action)
		}).
		MaxJobsActive(maxJobsActive).
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) Start() {
	w.logger.Info("worker started", map[string]interface{}{"taskType": w.taskType})
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
}
