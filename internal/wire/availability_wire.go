package wire

import (
	"hotel-reservation/internal/adaptor"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability/search - Search rooms for a stay window (public)
	r.Get("/api/availability/search", availabilityHandler.Search)

	// GET /api/availability/rooms/{id} - Check a single room for a stay window (public)
	r.Get("/api/availability/rooms/{id}", availabilityHandler.CheckRoom)
}
