// internal/workers/consultation/file-consultation/models.go
package fileconsultation

import (
	"encoding/json"

	"salesops-workers/internal/models"
	"salesops-workers/internal/triage"
)

// Input files one consultation. The triage snapshot comes from the live
// session when SessionID is set, from TriageSnapshot when it is inline, and
// is omitted when neither is given.
type Input struct {
	SessionID      string                    `json:"sessionId,omitempty"`
	Consultation   models.ConsultationFields `json:"consultation"`
	TriageSnapshot json.RawMessage           `json:"triageSnapshot,omitempty"`
}

type Output struct {
	ConsultationID string                    `json:"consultationId"`
	Status         string                    `json:"consultationStatus"`
	StoreName      string                    `json:"storeName"`
	AgentID        string                    `json:"agentId"`
	WithTriage     bool                      `json:"withTriage"`
	TriageStatus   triage.Status             `json:"triageStatus,omitempty"`
	TriageOutcome  *triage.RecommendationKey `json:"triageOutcome,omitempty"`
}
