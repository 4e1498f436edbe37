package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	noShow  usecase.NoShowService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, noShow usecase.NoShowService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		noShow:  noShow,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// Create handles POST /api/reservations (protected)
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// Get handles GET /api/reservations/{id} (protected)
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID := chi.URLParam(r, "id")
	reservation, err := h.service.GetReservation(r.Context(), userID, role, reservationID)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// GetByConfirmation handles GET /api/reservations/confirmation/{number} (protected)
func (h *ReservationHandler) GetByConfirmation(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	confirmation := chi.URLParam(r, "number")
	reservation, err := h.service.GetByConfirmation(r.Context(), userID, role, confirmation)
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation by confirmation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ListMine handles GET /api/user/reservations (protected)
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	limit := utils.ParseInt(query.Get("per_page"), 10)
	page := utils.ParseInt(query.Get("page"), 1)
	offset := (page - 1) * limit

	reservations, err := h.service.ListGuestReservations(r.Context(), userID, limit, offset)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// Update handles PUT /api/reservations/{id} (protected)
func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservationID := chi.URLParam(r, "id")
	reservation, err := h.service.UpdateReservation(r.Context(), userID, role, reservationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// Cancel handles DELETE /api/reservations/{id} (protected)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	// Body is optional on cancel
	var req request.CancelReservationRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	reservationID := chi.URLParam(r, "id")
	reservation, err := h.service.CancelReservation(r.Context(), userID, role, reservationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// Confirm handles POST /api/reservations/{id}/confirm (protected)
func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ConfirmReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservationID := chi.URLParam(r, "id")
	reservation, err := h.service.ConfirmReservation(r.Context(), userID, role, reservationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// SweepNoShows handles POST /api/admin/reservations/sweep-no-shows (admin)
func (h *ReservationHandler) SweepNoShows(w http.ResponseWriter, r *http.Request) {
	result, err := h.noShow.SweepNoShows(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "sweep no-shows")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

func actorFromContext(r *http.Request) (uuid.UUID, entity.Role, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, entity.Role(role), true
}
