package wire

import (
	"hotel-reservation/internal/adaptor"
	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/middleware"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFrontDesk(
	r chi.Router,
	checkInHandler *adaptor.CheckInHandler,
	checkOutHandler *adaptor.CheckOutHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== STAFF ROUTES ====================
	// Front desk operations require authentication AND staff role
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(entity.RoleStaff, log))

		// POST /api/checkin - Check a guest in
		r.Post("/api/checkin", checkInHandler.CheckIn)

		// GET /api/checkin/validate/{confirmation} - Verify a reservation before check-in
		r.Get("/api/checkin/validate/{confirmation}", checkInHandler.Validate)

		// GET /api/checkin/today - Arrivals due today
		r.Get("/api/checkin/today", checkInHandler.DueToday)

		// POST /api/checkout - Check a guest out and settle the bill
		r.Post("/api/checkout", checkOutHandler.CheckOut)

		// POST /api/checkout/preview - Price a check-out without applying it
		r.Post("/api/checkout/preview", checkOutHandler.Preview)

		// GET /api/checkout/today - Departures due today
		r.Get("/api/checkout/today", checkOutHandler.DueToday)
	})
}
