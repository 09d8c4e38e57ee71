// internal/workers/triage/record-triage-answer/models.go
package recordtriageanswer

import "salesops-workers/internal/triage"

// Input carries one answer event. Exactly one of BlockConditionID and
// Question is set. Checked defaults to true for block conditions.
type Input struct {
	SessionID        string `json:"sessionId"`
	BlockConditionID string `json:"blockConditionId,omitempty"`
	Checked          *bool  `json:"checked,omitempty"`
	Question         string `json:"question,omitempty"`
	Value            string `json:"value,omitempty"`
}

type Output struct {
	SessionID  string            `json:"sessionId"`
	Evaluation triage.Evaluation `json:"evaluation"`
	Snapshot   triage.Snapshot   `json:"triageSnapshot"`
}
