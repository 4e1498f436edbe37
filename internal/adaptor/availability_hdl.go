package adaptor

import (
	"net/http"
	"strconv"
	"strings"

	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// Search handles GET /api/availability/search (public)
func (h *AvailabilityHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.SearchAvailabilityRequest{
		CheckInDate:  query.Get("check_in_date"),
		CheckOutDate: query.Get("check_out_date"),
		Adults:       utils.ParseInt(query.Get("adults"), 1),
		Children:     utils.ParseInt(query.Get("children"), 0),
		RoomType:     query.Get("room_type"),
		PriceBand:    strings.ToUpper(query.Get("price_band")),
	}
	if amenities := query.Get("amenities"); amenities != "" {
		req.Amenities = strings.Split(amenities, ",")
	}
	if accessible := query.Get("accessible"); accessible != "" {
		value, err := strconv.ParseBool(accessible)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid accessible flag", nil)
			return
		}
		req.Accessible = &value
	}

	rooms, err := h.service.SearchAvailableRooms(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "search availability")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// CheckRoom handles GET /api/availability/rooms/{id} (public)
func (h *AvailabilityHandler) CheckRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.RoomAvailabilityRequest{
		CheckInDate:  query.Get("check_in_date"),
		CheckOutDate: query.Get("check_out_date"),
	}

	availability, err := h.service.CheckRoomAvailability(r.Context(), roomID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "check room availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
