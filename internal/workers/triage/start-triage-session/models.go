// internal/workers/triage/start-triage-session/models.go
package starttriagesession

import "salesops-workers/internal/triage"

type Input struct {
	AgentID string `json:"agentId"`
}

type Output struct {
	SessionID       string                  `json:"sessionId"`
	ExpiresAt       string                  `json:"expiresAt"` // ISO 8601
	BlockConditions []triage.BlockCondition `json:"blockConditions"`
	Evaluation      triage.Evaluation       `json:"evaluation"`
}
