// internal/workers/triage/evaluate-triage/handler.go
package evaluatetriage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"salesops-workers/internal/common/errors"
	"salesops-workers/internal/common/logger"
	"salesops-workers/internal/common/metrics"
	"salesops-workers/internal/triage"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-triage"
)

// questionOrder is the order answers are replayed in; a question is only
// accepted once the answers before it make it reachable.
var questionOrder = []triage.Question{
	triage.QuestionBusinessType,
	triage.QuestionStoreType,
	triage.QuestionUsesDelivery,
	triage.QuestionContractCleared,
	triage.QuestionWillReplaceDevice,
	triage.QuestionPosPlatform,
	triage.QuestionVan,
	triage.QuestionTerminal,
}

type Handler struct {
	config       *Config
	catalog      triage.Catalog
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, catalog triage.Catalog, log logger.Logger) *Handler {
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if err := checkQuestions(input.Answers); err != nil {
		return nil, err
	}

	w := triage.NewWizard(h.catalog)
	for _, q := range questionOrder {
		raw, ok := input.Answers[string(q)]
		if !ok {
			continue
		}
		a, err := triage.ParseAnswer(q, raw)
		if err != nil {
			return nil, errors.NewTriageAnswerRejectedError(err).WithMetadata("question", string(q))
		}
		if err := w.Answer(a); err != nil {
			return nil, errors.NewTriageAnswerRejectedError(err).WithMetadata("question", string(q))
		}
	}
	for _, id := range input.BlockedConditionIDs {
		if err := w.ToggleBlockCondition(id, true); err != nil {
			return nil, errors.NewTriageAnswerRejectedError(err).WithMetadata("blockConditionId", id)
		}
	}

	ev := w.Evaluate()
	metrics.TriageEvaluated(string(ev.Status), ev.Outcome)

	return &Output{
		Evaluation: ev,
		Snapshot:   triage.TakeSnapshot(w.State()),
	}, nil
}

func checkQuestions(answers map[string]string) error {
	known := make(map[string]struct{}, len(questionOrder))
	for _, q := range questionOrder {
		known[string(q)] = struct{}{}
	}

	var unknown []string
	for k := range answers {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return errors.NewTriageInputInvalidError(fmt.Sprintf("unknown questions: %v", unknown))
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
		"jobKey":  job.Key,
		"status":  output.Evaluation.Status,
		"outcome": output.Evaluation.Outcome,
	})
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	metrics.JobFailed(TaskType, string(errors.Normalize(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
