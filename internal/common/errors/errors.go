// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Triage wizard errors
	ErrCodeTriageInputInvalid    ErrorCode = "TRIAGE_INPUT_INVALID"
	ErrCodeTriageAnswerRejected  ErrorCode = "TRIAGE_ANSWER_REJECTED"
	ErrCodeTriageSessionNotFound ErrorCode = "TRIAGE_SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed    ErrorCode = "SESSION_STORE_FAILED"

	// Consultation errors
	ErrCodeConsultationValidationFailed ErrorCode = "CONSULTATION_VALIDATION_FAILED"
	ErrCodeConsultationNotFound         ErrorCode = "CONSULTATION_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns e for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewTriageInputInvalidError reports job variables that could not be read
// as triage input.
func NewTriageInputInvalidError(details string) *StandardError {
	return newError(ErrCodeTriageInputInvalid, "Invalid triage input", details, false)
}

// NewTriageAnswerRejectedError reports an answer the wizard refused: a hidden
// question, a blocked wizard, an invalid value or an unknown block condition.
func NewTriageAnswerRejectedError(err error) *StandardError {
	return newError(ErrCodeTriageAnswerRejected, "Triage answer rejected", err.Error(), false)
}

func NewTriageSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeTriageSessionNotFound, "Triage session not found or expired",
		fmt.Sprintf("session %s", sessionID), false).WithMetadata("sessionId", sessionID)
}

func NewSessionStoreFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Triage session store failed",
		fmt.Sprintf("%s: %v", operation, err), true)
}

func NewConsultationValidationFailedError(details string) *StandardError {
	return newError(ErrCodeConsultationValidationFailed, "Consultation validation failed", details, false)
}

func NewConsultationNotFoundError(consultationID string) *StandardError {
	return newError(ErrCodeConsultationNotFound, "Consultation not found",
		fmt.Sprintf("consultation %s", consultationID), false).WithMetadata("consultationId", consultationID)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection failed", err.Error(), true)
}

// NewDatabaseInsertFailedError creates a retryable write error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert failed", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Query execution failed",
		fmt.Sprintf("%s: %v", queryType, err), true)
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification send failed",
		fmt.Sprintf("%s: %v", notificationType, err), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. Codes not
// listed here are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeTriageInputInvalid:           "TRIAGE_INPUT_INVALID",
	ErrCodeTriageAnswerRejected:         "TRIAGE_ANSWER_REJECTED",
	ErrCodeTriageSessionNotFound:        "TRIAGE_SESSION_NOT_FOUND",
	ErrCodeSessionStoreFailed:           "SESSION_STORE_FAILED",
	ErrCodeConsultationValidationFailed: "CONSULTATION_VALIDATION_FAILED",
	ErrCodeConsultationNotFound:         "CONSULTATION_NOT_FOUND",
	ErrCodeDatabaseConnectionFailed:     "DATABASE_CONNECTION_FAILED",
	ErrCodeDatabaseInsertFailed:         "DATABASE_INSERT_FAILED",
	ErrCodeQueryExecutionFailed:         "QUERY_EXECUTION_FAILED",
	ErrCodeNotificationSendFailed:       "NOTIFICATION_SEND_FAILED",
	ErrCodeInternal:                     "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSessionStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "TRIAGE"):
		return "TRIAGE"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CONSULTATION"):
		return "CONSULTATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
