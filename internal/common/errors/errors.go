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

// Generation pipeline errors
const (
	ErrCodeInvalidRecommendation ErrorCode = "INVALID_RECOMMENDATION"
	ErrCodeGenerationFailed      ErrorCode = "GENERATION_FAILED"
	ErrCodeRequestValidation     ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeUnknownResource       ErrorCode = "UNKNOWN_RESOURCE"

	ErrCodeWebResearchTimeout        ErrorCode = "WEB_RESEARCH_TIMEOUT"
	ErrCodeWebResearchFailed         ErrorCode = "WEB_RESEARCH_FAILED"
	ErrCodeMarketAnalysisFailed      ErrorCode = "MARKET_ANALYSIS_FAILED"
	ErrCodeCompetitiveScanFailed     ErrorCode = "COMPETITIVE_SCAN_FAILED"
	ErrCodeStakeholderResearchFailed ErrorCode = "STAKEHOLDER_RESEARCH_FAILED"
	ErrCodeContentCompose            ErrorCode = "CONTENT_COMPOSE_FAILED"
	ErrCodeContentComposeTimeout     ErrorCode = "CONTENT_COMPOSE_TIMEOUT"
	ErrCodeDocPublishFailed          ErrorCode = "DOC_PUBLISH_FAILED"

	ErrCodeCRMLookupFailed ErrorCode = "CRM_LOOKUP_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeHistoryWriteFailed       ErrorCode = "HISTORY_WRITE_FAILED"
	ErrCodeIndexWriteFailed         ErrorCode = "INDEX_WRITE_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeEventPublishFailed     ErrorCode = "EVENT_PUBLISH_FAILED"
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
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
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

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// BPMNErrorMapping maps internal codes to the error codes the BPMN diagrams
// declare on their boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidRecommendation:     "GENERATION_INVALID_RECOMMENDATION",
	ErrCodeGenerationFailed:          "GENERATION_FAILED",
	ErrCodeRequestValidation:         "GENERATION_BAD_REQUEST",
	ErrCodeUnknownResource:           "GENERATION_BAD_REQUEST",
	ErrCodeWebResearchTimeout:        "RESEARCH_TIMEOUT",
	ErrCodeWebResearchFailed:         "RESEARCH_FAILED",
	ErrCodeMarketAnalysisFailed:      "RESEARCH_FAILED",
	ErrCodeCompetitiveScanFailed:     "RESEARCH_FAILED",
	ErrCodeStakeholderResearchFailed: "RESEARCH_FAILED",
	ErrCodeContentCompose:            "CONTENT_FAILED",
	ErrCodeContentComposeTimeout:     "CONTENT_TIMEOUT",
	ErrCodeDocPublishFailed:          "PUBLISH_FAILED",
	ErrCodeCRMLookupFailed:           "CRM_FAILED",
	ErrCodeDatabaseConnectionFailed:  "TECHNICAL_ERROR",
	ErrCodeHistoryWriteFailed:        "TECHNICAL_ERROR",
	ErrCodeIndexWriteFailed:          "TECHNICAL_ERROR",
	ErrCodeNotificationSendFailed:    "NOTIFICATION_FAILED",
	ErrCodeEventPublishFailed:        "TECHNICAL_ERROR",
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidRecommendationError is the single hard failure of the generation
// service: the analyzer produced a recommendation outside the three-way branch.
func NewInvalidRecommendationError(recommendation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRecommendation,
		Message:   "Invalid complexity recommendation",
		Details:   fmt.Sprintf("recommendation: %s", recommendation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestValidationError creates a non-retryable request validation error.
func NewRequestValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidation,
		Message:   "Generation request failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebResearchTimeoutError creates a retryable research timeout error.
func NewWebResearchTimeoutError(productName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebResearchTimeout,
		Message:   "Web research timed out",
		Details:   fmt.Sprintf("productName: %s", productName),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebResearchFailedError creates a retryable research error.
func NewWebResearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebResearchFailed,
		Message:   "Web research request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMarketAnalysisFailedError creates a retryable market analysis error.
func NewMarketAnalysisFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMarketAnalysisFailed,
		Message:   "Market analysis request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompetitiveScanFailedError creates a retryable competitive scan error.
func NewCompetitiveScanFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompetitiveScanFailed,
		Message:   "Competitive intelligence scan failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStakeholderResearchFailedError creates a retryable stakeholder research error.
func NewStakeholderResearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStakeholderResearchFailed,
		Message:   "Stakeholder research failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContentComposeError creates a retryable LLM composition error.
func NewContentComposeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContentCompose,
		Message:   "AI content composition failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocPublishFailedError creates a retryable publishing error.
func NewDocPublishFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocPublishFailed,
		Message:   "Document publishing failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMLookupFailedError creates a retryable CRM lookup error.
func NewCRMLookupFailedError(customerID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMLookupFailed,
		Message:   "Customer record lookup failed",
		Details:   fmt.Sprintf("customerId: %s, error: %s", customerID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryWriteFailedError creates a retryable history insert error.
func NewHistoryWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryWriteFailed,
		Message:   "Generation history insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexWriteFailedError creates a retryable index write error.
func NewIndexWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexWriteFailed,
		Message:   "Resource index write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Retry / Conversion
// ==========================

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeHistoryWriteFailed,
		ErrCodeIndexWriteFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCRMLookupFailed:
		return 3 // Retryable technical errors

	case ErrCodeWebResearchFailed,
		ErrCodeMarketAnalysisFailed,
		ErrCodeDocPublishFailed,
		ErrCodeContentCompose:
		return 2 // External collaborator errors

	case ErrCodeWebResearchTimeout,
		ErrCodeContentComposeTimeout:
		return 1 // As per BPMN boundary event

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
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
	case strings.Contains(codeStr, "RESEARCH") || strings.Contains(codeStr, "MARKET") || strings.Contains(codeStr, "CONTENT"):
		return "RESEARCH/AI"
	case strings.Contains(codeStr, "PUBLISH"):
		return "PUBLISHING"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "HISTORY") || strings.Contains(codeStr, "INDEX"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "EVENT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "CRM"):
		return "CRM"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "UNKNOWN"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
