package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeUpstreamForbidden   = "UPSTREAM_FORBIDDEN"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error code to an HTTP status.
func (e *AppError) Status() int {
	switch e.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeForbidden, CodeUpstreamForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodePayloadTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case CodeUpstreamError:
		return fiber.StatusBadGateway
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodeUpstreamUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewUpstreamError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// AsAppError classifies any error coming out of a handler. GORM sentinels are
// translated; anything unknown becomes an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return &AppError{Code: CodeValidation, Message: fiberErr.Message}
		case fiber.StatusNotFound:
			return &AppError{Code: CodeNotFound, Message: fiberErr.Message}
		case fiber.StatusRequestEntityTooLarge:
			return &AppError{Code: CodePayloadTooLarge, Message: fiberErr.Message}
		}
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Code: CodeNotFound, Message: "Resource not found", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &AppError{Code: CodeConflict, Message: "Resource already exists", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &AppError{Code: CodeValidation, Message: "Referenced resource does not exist", Err: err}
	}
	return NewInternalError(err)
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)
	status := appErr.Status()

	// fiber errors outside the mapped codes keep their own status
	var fiberErr *fiber.Error
	if appErr.Code == CodeInternal && errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
	}

	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("code", appErr.Code),
			slog.Any("error", err),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
		Field: appErr.Field,
	})
}
