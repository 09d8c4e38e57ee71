// internal/workers/triage/evaluate-triage/models.go
package evaluatetriage

import "salesops-workers/internal/triage"

// Input is a complete answer form. Answers is keyed by question name
// (businessType, storeType, usesDelivery, ...) with raw UI values.
type Input struct {
	BlockedConditionIDs []string          `json:"blockedConditionIds,omitempty"`
	Answers             map[string]string `json:"answers"`
}

type Output struct {
	Evaluation triage.Evaluation `json:"evaluation"`
	Snapshot   triage.Snapshot   `json:"triageSnapshot"`
}
