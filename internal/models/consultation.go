// internal/models/consultation.go
package models

import "time"

const (
	ConsultationStatusFiled = "filed"
)

// ConsultationFields is what the agent enters on the consultation form.
type ConsultationFields struct {
	StoreName    string `json:"storeName"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	Region       string `json:"region,omitempty"`
	AgentID      string `json:"agentId"`
	Notes        string `json:"notes,omitempty"`
}

// Consultation is a filed consultation row. TriageSnapshot holds the raw
// JSONB payload and is nil when the agent skipped triage.
type Consultation struct {
	ConsultationFields

	ID             string    `json:"id"`
	TriageSnapshot []byte    `json:"-"`
	TriageOutcome  *string   `json:"triageOutcome,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasTriage reports whether a snapshot was stored with the consultation.
func (c Consultation) HasTriage() bool {
	return len(c.TriageSnapshot) > 0
}
