// internal/workers/consultation/file-consultation/schema.go
package fileconsultation

import "salesops-workers/internal/common/validation"

var fieldsSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["storeName", "contactName", "contactPhone", "agentId"],
	"properties": {
		"storeName":    {"type": "string", "pattern": "\\S", "maxLength": 200},
		"contactName":  {"type": "string", "pattern": "\\S", "maxLength": 100},
		"contactPhone": {"type": "string", "pattern": "\\S"},
		"region":       {"type": "string", "maxLength": 100},
		"agentId":      {"type": "string", "pattern": "\\S"},
		"notes":        {"type": "string", "maxLength": 2000}
	}
}`)

// snapshotSchema only checks the envelope. Field values are read tolerantly
// by triage.DecodeSnapshot, so bad answers are dropped rather than rejected.
var snapshotSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"schemaVersion":       {"type": "integer", "minimum": 1},
		"blockedConditionIds": {"type": ["array", "null"]}
	}
}`)
