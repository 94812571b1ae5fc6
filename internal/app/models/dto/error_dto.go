package dto

import (
	"net/http"
	"time"
)

// ErrorCode identifies an API failure. The prefix groups codes by area.
type ErrorCode string

const (
	// Authentication and authorization
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Resources
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeConflict              ErrorCode = "RES_004"
	ErrorCodeProfileRequired       ErrorCode = "RES_005"

	// Request validation
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "VAL_002"

	// Server side
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

var errorCodeStatus = map[ErrorCode]int{
	ErrorCodeInvalidCredentials:    http.StatusUnauthorized,
	ErrorCodeInvalidToken:          http.StatusUnauthorized,
	ErrorCodeExpiredToken:          http.StatusUnauthorized,
	ErrorCodeUnauthorized:          http.StatusUnauthorized,
	ErrorCodeForbidden:             http.StatusForbidden,
	ErrorCodeResourceNotFound:      http.StatusNotFound,
	ErrorCodeResourceAlreadyExists: http.StatusConflict,
	ErrorCodeConflict:              http.StatusConflict,
	ErrorCodeProfileRequired:       http.StatusNotFound,
	ErrorCodeValidationFailed:      http.StatusBadRequest,
	ErrorCodeBadRequest:            http.StatusBadRequest,
	ErrorCodeDatabaseError:         http.StatusInternalServerError,
}

// Status returns the HTTP status a response carrying this code is sent with.
// Unknown codes map to 500.
func (c ErrorCode) Status() int {
	if status, ok := errorCodeStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail is the error object of a failed API response
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"VAL_001"`
	Message  string        `json:"message" example:"Validation failed"`
	Field    string        `json:"field,omitempty" example:"educationLevel"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse wraps an ErrorDetail
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2026-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	severity := ErrorSeverityError
	if code.Status() >= http.StatusInternalServerError {
		severity = ErrorSeverityCritical
	}
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: severity,
	}
}

// WithField names the request field the error refers to
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches extra context, such as per-field validation errors
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// FieldErrors collects per-field validation failures
type FieldErrors []ErrorDetail

// Add records a failure for field
func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, ErrorDetail{
		Code:     ErrorCodeValidationFailed,
		Message:  message,
		Field:    field,
		Severity: ErrorSeverityError,
	})
}
