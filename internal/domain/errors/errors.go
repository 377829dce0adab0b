package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaleRecord        = errors.New("record changed since it was read")
)

// Identity-service errors surfaced by the auth gateway
var (
	ErrIdentityUserNotFound = errors.New("identity account not found")
	ErrIdentityEmailExists  = errors.New("email already registered with identity service")
	ErrIdentityInvalidEmail = errors.New("identity service rejected email format")
	ErrIdentityUnavailable  = errors.New("identity service unavailable")
)

// Wire codes are part of the dashboard API contract; the frontend switches
// on them, so the strings must not change.
const (
	CodeMalformedRequest    = "MALFORMED_REQUEST"
	CodeInvalidInfluencerID = "INVALID_INFLUENCER_ID"
	CodeValidation          = "VALIDATION_ERROR"
	CodeDuplicateValues     = "DUPLICATE_VALUES"
	CodeEmailInUse          = "EMAIL_IN_USE"
	CodeInvalidEmail        = "INVALID_EMAIL"
	CodeInfluencerNotFound  = "INFLUENCER_NOT_FOUND"
	CodeMissingAuthUID      = "MISSING_AUTH_UID"
	CodeAuthUserNotFound    = "AUTH_USER_NOT_FOUND"
	CodeAuthUpdateFailed    = "AUTH_UPDATE_FAILED"
	CodeStoreUpdateFailed   = "FIRESTORE_UPDATE_FAILED"
	CodeDatabaseTimeout     = "DATABASE_TIMEOUT"
	CodeDatabaseUnavailable = "DATABASE_UNAVAILABLE"
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicateResource   = "DUPLICATE_RESOURCE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
)

// AppError represents an application error with HTTP status and a stable
// machine-readable code.
type AppError struct {
	Status  int      `json:"-"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(code, message string) *AppError {
	return NewAppError(http.StatusNotFound, code, message, ErrNotFound)
}

func BadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, ErrInvalidInput)
}

func Conflict(code, message string) *AppError {
	return NewAppError(http.StatusConflict, code, message, ErrAlreadyExists)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// Validation builds a VALIDATION_ERROR carrying per-field messages.
func Validation(details []string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "validation failed",
		Details: details,
		Err:     ErrInvalidInput,
	}
}

// AsAppError normalizes any error into an AppError, defaulting to a 500.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
