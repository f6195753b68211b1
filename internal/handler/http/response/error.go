package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/capacity-planner-go/internal/domain/planning"
	"github.com/cmlabs-hris/capacity-planner-go/internal/pkg/validator"
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
	case errors.Is(err, planning.ErrNoSnapshot):
		ServiceUnavailable(w, "No source snapshot loaded yet")
	case errors.Is(err, planning.ErrSourceUnavailable):
		BadGateway(w, "Source table fetch failed")
	case errors.Is(err, planning.ErrUnknownExportFormat):
		BadRequest(w, "Unknown export format, expected csv or xlsx", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
