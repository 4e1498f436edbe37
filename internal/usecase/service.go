package usecase

import (
	"time"

	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/events"
	"hotel-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Availability AvailabilityService
	Reservation  ReservationService
	CheckIn      CheckInService
	CheckOut     CheckOutService
	NoShow       NoShowService
}

func NewService(repo *repository.Repository, config *utils.Config, cache *redis.Client, publisher *events.Publisher, clock utils.Clock, log *zap.Logger) *Service {
	pricing := NewPricingEngine(config.Hotel, clock)
	confirmation := NewConfirmationGenerator(repo.Reservation, clock, config.Hotel.ConfirmationMaxAttempts)
	cacheTTL := time.Duration(config.Redis.CacheTTL) * time.Second

	availability := NewAvailabilityService(repo, pricing, clock, cache, cacheTTL, log)

	return &Service{
		Auth:         NewAuthService(repo, config, clock, log),
		Availability: availability,
		Reservation:  NewReservationService(repo, availability, pricing, confirmation, publisher, config.Hotel, clock, log),
		CheckIn:      NewCheckInService(repo, publisher, config.Hotel, clock, log),
		CheckOut:     NewCheckOutService(repo, pricing, publisher, config.Hotel, clock, log),
		NoShow:       NewNoShowService(repo, publisher, config.Hotel, clock, log),
	}
}
