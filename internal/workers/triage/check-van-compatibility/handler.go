// internal/workers/triage/check-van-compatibility/handler.go
package checkvancompatibility

import (
	"context"
	"encoding/json"
	"fmt"

	"salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/metrics"
	"salesops-workers/internal/triage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-van-compatibility"
)

// VanCatalog is a Catalog that can also list its VANs.
type VanCatalog interface {
	triage.Catalog
	CompatibleVans() []string
	IncompatibleVans() []string
}

type Handler struct {
	config       *Config
	catalog      VanCatalog
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, catalog VanCatalog, log logger.Logger) *Handler {
	if catalog == nil {
		catalog = triage.DefaultCatalog()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

// execute runs the advisory check as if an Android POS were being replaced,
// which is the only branch the check applies to.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	w := triage.NewWizard(h.catalog)
	for _, a := range []triage.Answer{
		triage.BusinessTypeAnswer{Value: triage.BusinessFood},
		triage.StoreTypeAnswer{Value: triage.StoreExisting},
		triage.ContractAnswer{Cleared: true},
		triage.ReplacementAnswer{WillReplace: true},
		triage.PlatformAnswer{Platform: triage.PlatformAndroid},
	} {
		if err := w.Answer(a); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	if input.Van != "" {
		if err := answer(w, triage.QuestionVan, input.Van); err != nil {
			return nil, err
		}
	}
	if input.Terminal != "" {
		if input.Van == "" {
			return nil, errors.NewTriageInputInvalidError("terminal requires a van")
		}
		if err := answer(w, triage.QuestionTerminal, input.Terminal); err != nil {
			return nil, err
		}
	}

	c := triage.CheckCompatibility(h.catalog, w.State())
	return &Output{
		CompatibleVans:     h.catalog.CompatibleVans(),
		IncompatibleVans:   h.catalog.IncompatibleVans(),
		VanCompatible:      c.Van != "" && h.catalog.IsCompatibleVan(c.Van),
		TerminalCompatible: c.Status == triage.CompatibilityCompatible,
		Compatibility:      c,
	}, nil
}

func answer(w *triage.Wizard, q triage.Question, raw string) error {
	a, err := triage.ParseAnswer(q, raw)
	if err != nil {
		return errors.NewTriageAnswerRejectedError(err)
	}
	if err := w.Answer(a); err != nil {
		return errors.NewTriageAnswerRejectedError(err)
	}
	return nil
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
		"jobKey":        job.Key,
		"compatibility": output.Compatibility.Status,
	})
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	metrics.JobFailed(TaskType, string(errors.Normalize(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
