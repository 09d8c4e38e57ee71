// internal/workers/consultation/notify-manual-review/models.go
package notifymanualreview

import "salesops-workers/internal/triage"

const (
	ChannelSNS = "sns"
	ChannelSES = "ses"
)

type Input struct {
	ConsultationID string                    `json:"consultationId"`
	StoreName      string                    `json:"storeName"`
	AgentID        string                    `json:"agentId"`
	TriageStatus   triage.Status             `json:"triageStatus"`
	TriageOutcome  *triage.RecommendationKey `json:"triageOutcome,omitempty"`
}

type Output struct {
	Notified       bool     `json:"notified"`
	NotificationID string   `json:"notificationId,omitempty"`
	Channels       []string `json:"channels"`
	SkippedReason  string   `json:"skippedReason,omitempty"`
	SNSMessageID   string   `json:"snsMessageId,omitempty"`
	SESMessageID   string   `json:"sesMessageId,omitempty"`
}

// reviewMessage is the SNS payload consumed by the review desk.
type reviewMessage struct {
	NotificationID string                    `json:"notificationId"`
	ConsultationID string                    `json:"consultationId"`
	StoreName      string                    `json:"storeName"`
	AgentID        string                    `json:"agentId"`
	TriageStatus   triage.Status             `json:"triageStatus"`
	TriageOutcome  *triage.RecommendationKey `json:"triageOutcome,omitempty"`
	Reason         string                    `json:"reason"`
}
