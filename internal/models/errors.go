package models

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
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

// Error codes for the circle relationship state machine. Each code maps to
// exactly one failure described in the API docs; handlers translate them to
// HTTP statuses via server.statusForError.
const (
	CodeSelfReference        = "SELF_REFERENCE"
	CodeDuplicateInvite      = "DUPLICATE_INVITE"
	CodeReverseInvitePending = "REVERSE_INVITE_PENDING"
	CodeAlreadyConnected     = "ALREADY_CONNECTED"
	CodeNoPendingInvite      = "NO_PENDING_INVITE"
	CodeNotConnected         = "NOT_CONNECTED"
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternal             = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

func NewSelfReferenceError() *AppError {
	return &AppError{
		Code:    CodeSelfReference,
		Message: "You cannot perform this action on yourself",
	}
}

func NewDuplicateInviteError() *AppError {
	return &AppError{
		Code:    CodeDuplicateInvite,
		Message: "Invite already sent to this user",
	}
}

func NewReverseInvitePendingError() *AppError {
	return &AppError{
		Code:    CodeReverseInvitePending,
		Message: "This user already invited you; accept or reject their invite instead",
	}
}

func NewAlreadyConnectedError() *AppError {
	return &AppError{
		Code:    CodeAlreadyConnected,
		Message: "You are already connected with this user",
	}
}

func NewNoPendingInviteError() *AppError {
	return &AppError{
		Code:    CodeNoPendingInvite,
		Message: "No pending invite from this user",
	}
}

func NewNotConnectedError() *AppError {
	return &AppError{
		Code:    CodeNotConnected,
		Message: "You are not connected with this user",
	}
}

// RespondWithError creates a standardized error response. Server-side
// failures are logged and answered with a generic body; the underlying
// cause (driver errors, DSNs) never reaches the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		slog.Error("internal error",
			slog.Int("status", status),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(status).JSON(ErrorResponse{
			Error: "Internal server error",
			Code:  CodeInternal,
		})
	}

	var response ErrorResponse
	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
