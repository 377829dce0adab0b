package response

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "firmdesk.backend/internal/domain/errors"
)

// SuccessEnvelope is the outward shape of every successful response
type SuccessEnvelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorEnvelope is the outward shape of every failed response
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the stable machine-readable code the frontend
// switches on, plus a human message. Stack traces never appear here.
type ErrorBody struct {
	Message   string   `json:"message"`
	Code      string   `json:"code"`
	Details   []string `json:"details,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// PaginatedData wraps list results
type PaginatedData struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessEnvelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Error converts any error into the structured error envelope. Errors
// that are not AppErrors become generic 500s.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)
	c.JSON(appErr.Status, ErrorEnvelope{
		Success: false,
		Error: ErrorBody{
			Message:   appErr.Message,
			Code:      appErr.Code,
			Details:   appErr.Details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// BindError maps a body-decoding failure onto MALFORMED_REQUEST, or onto
// VALIDATION_ERROR when binding-tag checks failed.
func BindError(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		Error(c, appErr)
		return
	}
	Error(c, domainerrors.BadRequest(domainerrors.CodeMalformedRequest, "request body could not be parsed"))
}
