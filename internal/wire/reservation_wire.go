package wire

import (
	"hotel-reservation/internal/adaptor"
	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/middleware"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/reservations - Create a new reservation
		r.Post("/api/reservations", reservationHandler.Create)

		// GET /api/reservations/{id} - View reservation details (owner or staff)
		r.Get("/api/reservations/{id}", reservationHandler.Get)

		// GET /api/reservations/confirmation/{number} - Look up by confirmation number
		r.Get("/api/reservations/confirmation/{number}", reservationHandler.GetByConfirmation)

		// PUT /api/reservations/{id} - Modify a reservation
		r.Put("/api/reservations/{id}", reservationHandler.Update)

		// DELETE /api/reservations/{id} - Cancel a reservation
		r.Delete("/api/reservations/{id}", reservationHandler.Cancel)

		// POST /api/reservations/{id}/confirm - Confirm after payment
		r.Post("/api/reservations/{id}/confirm", reservationHandler.Confirm)

		// GET /api/user/reservations - View the caller's reservation history
		r.Get("/api/user/reservations", reservationHandler.ListMine)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(entity.RoleAdmin, log))

		// POST /api/admin/reservations/sweep-no-shows - Mark overdue arrivals as no-show
		r.Post("/sweep-no-shows", reservationHandler.SweepNoShows)
	})
}
