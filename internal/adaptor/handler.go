package adaptor

import (
	"errors"
	"net/http"

	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Reservation  *ReservationHandler
	CheckIn      *CheckInHandler
	CheckOut     *CheckOutHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Reservation:  NewReservationHandler(service.Reservation, service.NoShow, log),
		CheckIn:      NewCheckInHandler(service.CheckIn, log),
		CheckOut:     NewCheckOutHandler(service.CheckOut, log),
	}
}

// handleServiceError maps typed domain errors to stable response codes.
// Anything unmatched is treated as an infrastructure failure.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var notFound *usecase.NotFoundError
	var invalidInput *usecase.InvalidInputError
	var notAvailable *usecase.RoomNotAvailableError
	var invalidState *usecase.InvalidStateError
	var forbidden *usecase.ForbiddenError
	var conflict *usecase.ConflictError

	switch {
	case errors.As(err, &notFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &invalidInput):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &notAvailable):
		log.Warn(operation+" failed - room not available", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]any{
			"room_number":    notAvailable.RoomNumber,
			"check_in_date":  notAvailable.CheckIn,
			"check_out_date": notAvailable.CheckOut,
			"conflicts_with": notAvailable.ConflictsWith,
		})

	case errors.As(err, &invalidState):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), map[string]any{
			"current_status": invalidState.Current,
			"operation":      invalidState.Operation,
			"valid_states":   invalidState.ValidStates,
		})

	case errors.As(err, &forbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.As(err, &conflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
