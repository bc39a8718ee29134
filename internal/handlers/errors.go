package handlers

import (
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/safari-trip-api/internal/models"
)

// httpError maps domain errors onto huma status errors.
func httpError(log *slog.Logger, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error422UnprocessableEntity("Invalid input", &huma.ErrorDetail{
			Location: verr.Field,
			Message:  verr.Message,
		})
	case errors.Is(err, models.ErrNotFound):
		return huma.Error404NotFound("Trip not found")
	case errors.Is(err, models.ErrForbidden):
		return huma.Error403Forbidden("You cannot book your own trip")
	case errors.Is(err, models.ErrCapacityExceeded):
		return huma.Error409Conflict("Not enough seats available")
	case errors.Is(err, models.ErrCatalogUnavailable):
		log.Error("catalog unavailable", "error", err)
		return huma.Error503ServiceUnavailable("Trip catalog is temporarily unavailable")
	case errors.Is(err, models.ErrPersistence):
		log.Error("catalog not saved", "error", err)
		return huma.Error500InternalServerError("Failed to save changes, nothing was booked or published")
	}
	log.Error("unexpected error", "error", err)
	return huma.Error500InternalServerError("Internal server error")
}
