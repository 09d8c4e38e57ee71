// internal/workers/consultation/notify-manual-review/handler.go
package notifymanualreview

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
	"github.com/google/uuid"
)

const (
	TaskType = "notify-manual-review"
)

// Publisher is satisfied by aws.SNSClient.
type Publisher interface {
	Publish(ctx context.Context, subject, message string, attrs map[string]string) (string, error)
}

// Mailer is satisfied by aws.SESClient.
type Mailer interface {
	SendText(ctx context.Context, to []string, subject, body string) (string, error)
}

type Handler struct {
	config       *Config
	publisher    Publisher
	mailer       Mailer
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

// NewHandler builds the handler. publisher and mailer may be nil when their
// channel is disabled.
func NewHandler(config *Config, publisher Publisher, mailer Mailer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		publisher:    publisher,
		mailer:       mailer,
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

// reviewNamespace scopes notification IDs derived from consultations.
var reviewNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("salesops-workers/notify-manual-review"))

// notificationID is stable for a consultation and status, so a retried job
// publishes under the same ID and subscribers can drop the duplicate.
func notificationID(consultationID string, status triage.Status) string {
	return uuid.NewSHA1(reviewNamespace, []byte(consultationID+"/"+string(status))).String()
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !input.TriageStatus.NeedsReview() {
		h.logger.Debug("status does not need review", map[string]interface{}{
			"consultationId": input.ConsultationID,
			"triageStatus":   input.TriageStatus,
		})
		return &Output{Channels: []string{}, SkippedReason: "status does not need review"}, nil
	}
	if input.ConsultationID == "" {
		return nil, errors.NewConsultationValidationFailedError("consultationId is required")
	}

	msg := reviewMessage{
		NotificationID: notificationID(input.ConsultationID, input.TriageStatus),
		ConsultationID: input.ConsultationID,
		StoreName:      input.StoreName,
		AgentID:        input.AgentID,
		TriageStatus:   input.TriageStatus,
		TriageOutcome:  input.TriageOutcome,
		Reason:         reviewReason(input.TriageStatus),
	}
	subject := fmt.Sprintf("Manual review: %s", input.StoreName)
	out := &Output{NotificationID: msg.NotificationID, Channels: []string{}}

	if h.config.SNSEnabled && h.publisher != nil {
		body, err := json.Marshal(msg)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		id, err := h.publisher.Publish(ctx, subject, string(body), map[string]string{
			"triageStatus":   string(input.TriageStatus),
			"notificationId": msg.NotificationID,
		})
		if err != nil {
			return nil, errors.NewNotificationSendFailedError(ChannelSNS, err)
		}
		out.SNSMessageID = id
		out.Channels = append(out.Channels, ChannelSNS)
		metrics.ReviewNotificationSent(ChannelSNS)
	}

	if h.config.SESEnabled && h.mailer != nil && len(h.config.ToEmails) > 0 {
		id, err := h.mailer.SendText(ctx, h.config.ToEmails, subject, renderEmail(msg))
		if err != nil {
			return nil, errors.NewNotificationSendFailedError(ChannelSES, err)
		}
		out.SESMessageID = id
		out.Channels = append(out.Channels, ChannelSES)
		metrics.ReviewNotificationSent(ChannelSES)
	}

	out.Notified = len(out.Channels) > 0
	if !out.Notified {
		out.SkippedReason = "no notification channel enabled"
	}

	h.logger.Info("manual review notification processed", map[string]interface{}{
		"consultationId": input.ConsultationID,
		"triageStatus":   input.TriageStatus,
		"channels":       out.Channels,
	})
	return out, nil
}

func reviewReason(s triage.Status) string {
	switch s {
	case triage.StatusManualReview:
		return "non-food business is outside automated triage"
	case triage.StatusContractBlocked:
		return "existing POS contract obligation has not been cleared"
	case triage.StatusFollowUp:
		return "store keeps its current device, VAN and terminal compatibility must be confirmed"
	}
	return string(s)
}

func renderEmail(m reviewMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A consultation needs manual review.\n\n")
	fmt.Fprintf(&b, "Consultation: %s\n", m.ConsultationID)
	fmt.Fprintf(&b, "Store:        %s\n", m.StoreName)
	fmt.Fprintf(&b, "Agent:        %s\n", m.AgentID)
	fmt.Fprintf(&b, "Status:       %s\n", m.TriageStatus)
	if m.TriageOutcome != nil {
		fmt.Fprintf(&b, "Outcome:      %s\n", *m.TriageOutcome)
	}
	fmt.Fprintf(&b, "Reason:       %s\n", m.Reason)
	return b.String()
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
		"jobKey":   job.Key,
		"notified": output.Notified,
	})
}

func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	metrics.JobFailed(TaskType, string(errors.Normalize(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
