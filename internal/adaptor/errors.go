package adaptor

import (
	"errors"
	"net/http"

	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps usecase errors onto HTTP responses
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrMovieNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Movie not found")

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSeatOutOfBounds):
		log.Warn(operation+" failed - seat out of bounds",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSeatAlreadyBooked):
		log.Info(operation+" failed - seat already booked",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Seat already booked", nil)

	case errors.Is(err, usecase.ErrNoBookingsPending):
		utils.ResponseBadRequest(w, "No bookings in the queue", nil)

	case errors.Is(err, usecase.ErrPersistence):
		log.Error(operation+" failed - storage unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnavailable(w, "Storage unavailable, please retry later")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
