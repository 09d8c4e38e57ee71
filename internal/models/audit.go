// internal/models/audit.go
package models

const (
	AuditEventConsultationFiled = "consultation_filed"
	AuditResourceConsultation   = "consultation"
)
