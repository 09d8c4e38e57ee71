// internal/workers/consultation/load-triage-snapshot/models.go
package loadtriagesnapshot

import "salesops-workers/internal/triage"

type Input struct {
	ConsultationID string `json:"consultationId"`
}

// Output is the read-only view of why a recommendation was given. Evaluation
// and Snapshot are nil when the consultation was filed without triage.
type Output struct {
	ConsultationID string             `json:"consultationId"`
	HasTriage      bool               `json:"hasTriage"`
	Evaluation     *triage.Evaluation `json:"evaluation,omitempty"`
	Snapshot       *triage.Snapshot   `json:"triageSnapshot,omitempty"`
}
