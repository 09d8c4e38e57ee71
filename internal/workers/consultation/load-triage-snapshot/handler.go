// internal/workers/consultation/load-triage-snapshot/handler.go
package loadtriagesnapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/metrics"
	"salesops-workers/internal/triage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "load-triage-snapshot"
)

type Handler struct {
	config       *Config
	loader       triage.SnapshotLoader
	catalog      triage.Catalog
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, loader triage.SnapshotLoader, catalog triage.Catalog, log logger.Logger) *Handler {
	if catalog == nil {
		catalog = triage.DefaultCatalog()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		loader:       loader,
		catalog:      catalog,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(client, job, errors.NewConsultationValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	id := strings.TrimSpace(input.ConsultationID)
	if id == "" {
		return nil, errors.NewConsultationValidationFailedError("consultationId is required")
	}

	ev, snap, ok, err := triage.Redisplay(ctx, h.loader, h.catalog, id)
	if err != nil {
		return nil, err
	}

	out := &Output{ConsultationID: id, HasTriage: ok}
	if ok {
		out.Evaluation = &ev
		out.Snapshot = snap
	}

	h.logger.Info("triage snapshot loaded", map[string]interface{}{
		"consultationId": id,
		"hasTriage":      ok,
	})
	return out, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.JobCompleted(TaskType)
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey":         job.Key,
		"consultationId": output.ConsultationID,
	})
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	metrics.JobFailed(TaskType, string(errors.Normalize(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
