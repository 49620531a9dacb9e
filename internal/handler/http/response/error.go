package response

import (
	"errors"
	"net/http"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/worker"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Timeclock domain errors
	case errors.Is(err, timeclock.ErrUnknownStampAction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timeclock.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timeclock.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
