package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/events"
	"hotel-reservation/pkg/utils"

	"go.uber.org/zap"
)

type NoShowService interface {
	SweepNoShows(ctx context.Context) (*response.SweepResult, error)
}

type noShowService struct {
	repo      *repository.Repository
	publisher *events.Publisher
	hotel     utils.HotelConfig
	clock     utils.Clock
	location  *time.Location
	log       *zap.Logger
}

func NewNoShowService(repo *repository.Repository, publisher *events.Publisher, hotel utils.HotelConfig, clock utils.Clock, log *zap.Logger) NoShowService {
	return &noShowService{
		repo:      repo,
		publisher: publisher,
		hotel:     hotel,
		clock:     clock,
		location:  hotelLocation(hotel),
		log:       log.With(zap.String("service", "noshow")),
	}
}

// SweepNoShows marks every CONFIRMED reservation whose check-in deadline
// has passed as NO_SHOW. Invoked by an external scheduler.
func (s *noShowService) SweepNoShows(ctx context.Context) (*response.SweepResult, error) {
	now := s.clock.Now().In(s.location)
	cutoff := utils.DateOnly(now)
	// Before the deadline hour today's arrivals are not overdue yet.
	if now.Hour() < s.hotel.CheckInDeadlineHour {
		cutoff = cutoff.AddDate(0, 0, -1)
	}
	cutoffDate := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	overdue, err := s.repo.Reservation.FindOverdueCheckIns(ctx, cutoffDate)
	if err != nil {
		return nil, fmt.Errorf("find overdue check-ins: %w", err)
	}

	result := &response.SweepResult{}
	for _, reservation := range overdue {
		if !reservation.Status.CanTransition(entity.StatusNoShow) {
			continue
		}

		reservation.Status = entity.StatusNoShow
		reservation.UpdatedAt = s.clock.Now()

		if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
			return nil, fmt.Errorf("mark reservation %s no-show: %w", reservation.ConfirmationNumber, err)
		}

		result.MarkedNoShow++
		result.Confirmations = append(result.Confirmations, reservation.ConfirmationNumber)

		s.publisher.Publish(ctx, events.EventReservationNoShow, buildReservationResponse(reservation))
	}

	s.log.Info("No-show sweep completed",
		zap.Time("cutoff", cutoffDate),
		zap.Int("marked", result.MarkedNoShow),
	)

	return result, nil
}
