package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/logger"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// Business logic errors
	ErrCodeIneligible  = "INELIGIBLE"
	ErrCodeRateLimited = "RATE_LIMITED"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// Kind classifies a caller-recoverable domain failure
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindDuplicate  Kind = "duplicate"
	KindIneligible Kind = "ineligible"
	KindForbidden  Kind = "forbidden"
)

// DomainError is returned by services for failures the caller can act on.
// Fields names the offending input fields, when there are any.
type DomainError struct {
	Kind    Kind
	Message string
	Fields  []string
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// Is matches any DomainError of the same kind, so errors.Is(err, &DomainError{Kind: KindNotFound}) works
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Validation(message string, fields ...string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

func Duplicate(message string) *DomainError {
	return &DomainError{Kind: KindDuplicate, Message: message}
}

func Ineligible(message string) *DomainError {
	return &DomainError{Kind: KindIneligible, Message: message}
}

func ForbiddenError(message string, fields ...string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message, Fields: fields}
}

// KindOf returns the kind of a DomainError anywhere in err's chain
func KindOf(err error) (Kind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsDomainError reports whether err carries a DomainError
func IsDomainError(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// CodeOf returns the API error code for a DomainError anywhere in err's chain
func CodeOf(err error) (string, bool) {
	kind, ok := KindOf(err)
	if !ok {
		return "", false
	}
	mapping, ok := kindStatus[kind]
	return mapping.code, ok
}

var kindStatus = map[Kind]struct {
	status int
	code   string
}{
	KindValidation: {http.StatusBadRequest, ErrCodeInvalidInput},
	KindNotFound:   {http.StatusNotFound, ErrCodeNotFound},
	KindDuplicate:  {http.StatusConflict, ErrCodeAlreadyExists},
	KindIneligible: {http.StatusUnprocessableEntity, ErrCodeIneligible},
	KindForbidden:  {http.StatusForbidden, ErrCodeForbidden},
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// RespondWithDomainError maps a service error onto an HTTP response.
// Errors that are not DomainErrors are logged and reported as a bare 500.
func RespondWithDomainError(c *gin.Context, err error) {
	var de *DomainError
	if errors.As(err, &de) {
		mapping, ok := kindStatus[de.Kind]
		if ok {
			apiErr := NewAPIError(mapping.code, de.Message)
			if len(de.Fields) > 0 {
				apiErr.Details = gin.H{"fields": de.Fields}
			}
			RespondWithError(c, mapping.status, apiErr)
			return
		}
	}

	logger.Error("unhandled service error", "path", c.FullPath(), "error", err)
	InternalError(c, "")
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
