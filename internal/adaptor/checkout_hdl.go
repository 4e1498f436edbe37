package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type CheckOutHandler struct {
	service usecase.CheckOutService
	log     *zap.Logger
}

func NewCheckOutHandler(service usecase.CheckOutService, log *zap.Logger) *CheckOutHandler {
	return &CheckOutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// CheckOut handles POST /api/checkout (staff)
func (h *CheckOutHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	staffID, _, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CheckOut(r.Context(), staffID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check out guest")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Preview handles POST /api/checkout/preview (staff)
func (h *CheckOutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req request.CheckOutPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	preview, err := h.service.Preview(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "preview check-out")
		return
	}

	utils.ResponseSuccess(w, "success", preview)
}

// DueToday handles GET /api/checkout/today (staff)
func (h *CheckOutHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.DueToday(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list departures")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}
