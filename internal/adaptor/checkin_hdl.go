package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckInHandler struct {
	service usecase.CheckInService
	log     *zap.Logger
}

func NewCheckInHandler(service usecase.CheckInService, log *zap.Logger) *CheckInHandler {
	return &CheckInHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkin")),
	}
}

// CheckIn handles POST /api/checkin (staff)
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	staffID, _, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CheckIn(r.Context(), staffID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check in guest")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Validate handles GET /api/checkin/validate/{confirmation} (staff)
func (h *CheckInHandler) Validate(w http.ResponseWriter, r *http.Request) {
	confirmation := chi.URLParam(r, "confirmation")
	if confirmation == "" {
		utils.ResponseBadRequest(w, "Confirmation number is required", nil)
		return
	}

	reservation, err := h.service.ValidateCheckIn(r.Context(), confirmation)
	if err != nil {
		handleServiceError(w, h.log, err, "validate check-in")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// DueToday handles GET /api/checkin/today (staff)
func (h *CheckInHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.DueToday(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list arrivals")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}
