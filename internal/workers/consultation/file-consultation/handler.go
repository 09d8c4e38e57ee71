// internal/workers/consultation/file-consultation/handler.go
package fileconsultation

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/metrics"
	"salesops-workers/internal/common/session"
	"salesops-workers/internal/common/validation"
	"salesops-workers/internal/models"
	"salesops-workers/internal/triage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "file-consultation"
)

type Handler struct {
	config       *Config
	filer        triage.ConsultationFiler[models.ConsultationFields]
	sessions     *session.Store
	catalog      triage.Catalog
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(
	config *Config,
	filer triage.ConsultationFiler[models.ConsultationFields],
	sessions *session.Store,
	catalog triage.Catalog,
	log logger.Logger,
) *Handler {
	if catalog == nil {
		catalog = triage.DefaultCatalog()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		filer:        filer,
		sessions:     sessions,
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
	if err := h.validate(input); err != nil {
		return nil, err
	}

	w, err := h.wizardFor(ctx, input)
	if err != nil {
		return nil, err
	}

	if w != nil && !w.Complete() {
		ev := w.Evaluate()
		return nil, errors.NewConsultationValidationFailedError(
			fmt.Sprintf("triage is not complete (status %s)", ev.Status),
		).WithMetadata("triageStatus", string(ev.Status))
	}

	out := &Output{
		Status:     models.ConsultationStatusFiled,
		StoreName:  input.Consultation.StoreName,
		AgentID:    input.Consultation.AgentID,
		WithTriage: w != nil,
	}
	if w != nil {
		ev := w.Evaluate()
		out.TriageStatus = ev.Status
		out.TriageOutcome = ev.Outcome
	}

	id, err := triage.Submit(ctx, h.filer, input.Consultation, w)
	if err != nil {
		return nil, err
	}
	out.ConsultationID = id
	metrics.ConsultationFiled(out.WithTriage)

	if input.SessionID != "" {
		if err := h.sessions.Delete(ctx, input.SessionID); err != nil {
			h.logger.Warn("failed to clear triage session", map[string]interface{}{
				"sessionId":      input.SessionID,
				"consultationId": id,
				"error":          err,
			})
		}
	}

	h.logger.Info("consultation filed", map[string]interface{}{
		"consultationId": id,
		"agentId":        input.Consultation.AgentID,
		"withTriage":     out.WithTriage,
		"triageStatus":   out.TriageStatus,
	})
	return out, nil
}

func (h *Handler) validate(input *Input) error {
	result := fieldsSchema.Validate(input.Consultation)
	if !result.Valid {
		return errors.NewConsultationValidationFailedError(result.Error())
	}
	if !validation.ValidatePhone(input.Consultation.ContactPhone) {
		return errors.NewConsultationValidationFailedError("contactPhone: invalid phone number")
	}
	if input.SessionID != "" && hasInlineSnapshot(input) {
		return errors.NewConsultationValidationFailedError("sessionId and triageSnapshot are mutually exclusive")
	}
	if hasInlineSnapshot(input) {
		if result := snapshotSchema.ValidateJSON(input.TriageSnapshot); !result.Valid {
			return errors.NewConsultationValidationFailedError("triageSnapshot: " + result.Error())
		}
	}
	return nil
}

func hasInlineSnapshot(input *Input) bool {
	return len(input.TriageSnapshot) > 0 && string(input.TriageSnapshot) != "null"
}

// wizardFor returns the wizard whose snapshot travels with the consultation,
// or nil when the agent skipped triage.
func (h *Handler) wizardFor(ctx context.Context, input *Input) (*triage.Wizard, error) {
	switch {
	case input.SessionID != "":
		w, err := h.sessions.Wizard(ctx, h.catalog, input.SessionID)
		if stderrors.Is(err, session.ErrNotFound) {
			return nil, errors.NewTriageSessionNotFoundError(input.SessionID)
		}
		if err != nil {
			return nil, errors.NewSessionStoreFailedError("load", err)
		}
		return w, nil
	case hasInlineSnapshot(input):
		return triage.RestoreWizard(h.catalog, triage.DecodeSnapshot(input.TriageSnapshot)), nil
	}
	return nil, nil
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
