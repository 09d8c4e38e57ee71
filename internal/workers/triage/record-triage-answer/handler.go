// internal/workers/triage/record-triage-answer/handler.go
package recordtriageanswer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/metrics"
	"salesops-workers/internal/common/session"
	"salesops-workers/internal/triage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-triage-answer"
)

type Handler struct {
	config       *Config
	store        *session.Store
	catalog      triage.Catalog
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, store *session.Store, catalog triage.Catalog, log logger.Logger) *Handler {
	if catalog == nil {
		catalog = triage.DefaultCatalog()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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
		h.fail(client, job, errors.NewTriageInputInvalidError(fmt.Sprintf("parse input: %v", err)))
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
	if err := validateInput(input); err != nil {
		return nil, err
	}

	w, err := h.store.Wizard(ctx, h.catalog, input.SessionID)
	if stderrors.Is(err, session.ErrNotFound) {
		return nil, errors.NewTriageSessionNotFoundError(input.SessionID)
	}
	if err != nil {
		return nil, errors.NewSessionStoreFailedError("load", err)
	}

	if err := apply(w, input); err != nil {
		return nil, errors.NewTriageAnswerRejectedError(err).
			WithMetadata("sessionId", input.SessionID)
	}

	snap := triage.TakeSnapshot(w.State())
	if err := h.store.Save(ctx, input.SessionID, snap); err != nil {
		return nil, errors.NewSessionStoreFailedError("save", err)
	}

	ev := w.Evaluate()
	metrics.TriageEvaluated(string(ev.Status), ev.Outcome)

	h.logger.Info("triage answer recorded", map[string]interface{}{
		"sessionId":    input.SessionID,
		"question":     input.Question,
		"blockId":      input.BlockConditionID,
		"status":       ev.Status,
		"nextQuestion": ev.NextQuestion,
	})

	return &Output{
		SessionID:  input.SessionID,
		Evaluation: ev,
		Snapshot:   snap,
	}, nil
}

func validateInput(input *Input) error {
	if input.SessionID == "" {
		return errors.NewTriageInputInvalidError("sessionId is required")
	}
	if (input.BlockConditionID == "") == (input.Question == "") {
		return errors.NewTriageInputInvalidError("exactly one of blockConditionId and question is required")
	}
	return nil
}

func apply(w *triage.Wizard, input *Input) error {
	if input.BlockConditionID != "" {
		checked := input.Checked == nil || *input.Checked
		return w.ToggleBlockCondition(input.BlockConditionID, checked)
	}

	a, err := triage.ParseAnswer(triage.Question(input.Question), input.Value)
	if err != nil {
		return err
	}
	return w.Answer(a)
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
		"jobKey": job.Key,
		"status": output.Evaluation.Status,
	})
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	metrics.JobFailed(TaskType, string(errors.Normalize(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
