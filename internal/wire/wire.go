// internal/wire/wire.go
package wire

import (
	"net/http"

	"hotel-reservation/internal/adaptor"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/pkg/events"
	"hotel-reservation/pkg/middleware"
	"hotel-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds all wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	cache *redis.Client,
	publisher *events.Publisher,
	clock utils.Clock,
	logger *zap.Logger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, config, cache, publisher, clock, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireAvailability(r, handler.Availability, config, logger)
	wireReservation(r, handler.Reservation, config, logger)
	wireFrontDesk(r, handler.CheckIn, handler.CheckOut, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
