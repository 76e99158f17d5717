package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents a machine-readable application error code
type ErrorCode string

const (
	// Generic
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	// Snapshot / upstream
	ErrCodeMissingData   ErrorCode = "MISSING_DATA"   // response carried no data payload at all
	ErrCodeUpstreamError ErrorCode = "UPSTREAM_ERROR" // campaign platform unreachable or broken
	ErrCodeCacheError    ErrorCode = "CACHE_ERROR"

	// Business-rule rejections from the campaign platform. Not faults:
	// the delivery layer turns them into UI routing decisions.
	ErrCodeNotEligible   ErrorCode = "NOT_ELIGIBLE"   // upstream 60012
	ErrCodeTeamFull      ErrorCode = "TEAM_FULL"      // upstream 60013
	ErrCodeAlreadyJoined ErrorCode = "ALREADY_JOINED" // upstream 60014
	ErrCodeOwnTeam       ErrorCode = "OWN_TEAM"       // upstream 60015
)

// AppError is the typed application error carried across layers.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsHardFailure reports whether the error is unrecoverable for this
// request (retry by re-fetching, never by merging partial data).
func (e *AppError) IsHardFailure() bool {
	return e.Code == ErrCodeMissingData ||
		e.Code == ErrCodeUpstreamError ||
		e.Code == ErrCodeInternal
}

// IsBusinessRejection reports whether the error is a campaign-platform
// business-rule rejection rather than a fault.
func (e *AppError) IsBusinessRejection() bool {
	switch e.Code {
	case ErrCodeNotEligible, ErrCodeTeamFull, ErrCodeAlreadyJoined, ErrCodeOwnTeam:
		return true
	}
	return false
}

// WithDetail attaches detail information to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRequestID attaches the request id to the error
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with formatting
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewMissingDataError marks a response that carried no data payload.
func NewMissingDataError(endpoint string) *AppError {
	return New(ErrCodeMissingData, "no data received from the server").
		WithDetail("endpoint", endpoint)
}

// NewUpstreamError wraps a transport-level failure against the
// campaign platform.
func NewUpstreamError(endpoint string, err error) *AppError {
	return Wrapf(err, ErrCodeUpstreamError, "campaign platform request failed: %s", endpoint).
		WithDetail("endpoint", endpoint)
}

// NewUnauthorizedError creates an authorization error
func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

// FromUpstreamCode maps a campaign-platform business code to an
// application error; ok is false for codes this service does not
// distinguish.
func FromUpstreamCode(code int, desc string) (*AppError, bool) {
	var ec ErrorCode
	switch code {
	case 60012:
		ec = ErrCodeNotEligible
	case 60013:
		ec = ErrCodeTeamFull
	case 60014:
		ec = ErrCodeAlreadyJoined
	case 60015:
		ec = ErrCodeOwnTeam
	default:
		return nil, false
	}
	if desc == "" {
		desc = string(ec)
	}
	return New(ec, desc).WithDetail("upstream_code", code), true
}

// AsAppError casts an error to AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
