package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/events"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckInService interface {
	CheckIn(ctx context.Context, staffID uuid.UUID, req *request.CheckInRequest) (*response.CheckInResponse, error)
	ValidateCheckIn(ctx context.Context, confirmation string) (*response.ReservationResponse, error)
	DueToday(ctx context.Context) ([]*response.ReservationResponse, error)
}

type checkInService struct {
	repo      *repository.Repository
	publisher *events.Publisher
	hotel     utils.HotelConfig
	clock     utils.Clock
	location  *time.Location
	log       *zap.Logger
}

func NewCheckInService(repo *repository.Repository, publisher *events.Publisher, hotel utils.HotelConfig, clock utils.Clock, log *zap.Logger) CheckInService {
	return &checkInService{
		repo:      repo,
		publisher: publisher,
		hotel:     hotel,
		clock:     clock,
		location:  hotelLocation(hotel),
		log:       log.With(zap.String("service", "checkin")),
	}
}

func (s *checkInService) CheckIn(ctx context.Context, staffID uuid.UUID, req *request.CheckInRequest) (*response.CheckInResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	reservation, err := s.validateForCheckIn(ctx, req.ConfirmationNumber)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, reservation.RoomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, &NotFoundError{Resource: "room", Key: reservation.RoomID.String()}
	}
	if room.Status == entity.RoomStatusOccupied {
		return nil, &ConflictError{Reason: fmt.Sprintf("room %s is still occupied", room.RoomNumber)}
	}

	keyCards := req.KeyCards
	if keyCards == 0 {
		keyCards = 1
	}

	now := s.clock.Now()
	reservation.CheckIn = &entity.CheckInDetails{
		ActualCheckInTime: now,
		ProcessedBy:       staffID,
		DocumentType:      req.DocumentType,
		DocumentNumber:    req.DocumentNumber,
		DepositAmount:     s.hotel.StandardDeposit,
		KeyCardsIssued:    keyCards,
		Notes:             req.Notes,
	}
	reservation.Status = entity.StatusCheckedIn
	reservation.UpdatedAt = now

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("check in reservation: %w", err)
	}

	if err := s.repo.Room.UpdateStatus(ctx, room.ID, entity.RoomStatusOccupied); err != nil {
		return nil, fmt.Errorf("mark room occupied: %w", err)
	}

	s.log.Info("Guest checked in",
		zap.String("confirmation_number", reservation.ConfirmationNumber),
		zap.String("room_number", room.RoomNumber),
		zap.String("staff_id", staffID.String()),
		zap.Float64("deposit", s.hotel.StandardDeposit),
	)

	s.publisher.Publish(ctx, events.EventCheckInCompleted, buildReservationResponse(reservation))

	return &response.CheckInResponse{
		Reservation:    *buildReservationResponse(reservation),
		CheckInTime:    now,
		DepositAmount:  s.hotel.StandardDeposit,
		KeyCardsIssued: keyCards,
	}, nil
}

func (s *checkInService) ValidateCheckIn(ctx context.Context, confirmation string) (*response.ReservationResponse, error) {
	reservation, err := s.validateForCheckIn(ctx, confirmation)
	if err != nil {
		return nil, err
	}
	return buildReservationResponse(reservation), nil
}

func (s *checkInService) DueToday(ctx context.Context) ([]*response.ReservationResponse, error) {
	today := utils.DateOnly(s.clock.Now().In(s.location))
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	reservations, err := s.repo.Reservation.FindDueCheckIns(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find due check-ins: %w", err)
	}

	results := make([]*response.ReservationResponse, len(reservations))
	for i, r := range reservations {
		results[i] = buildReservationResponse(r)
	}
	return results, nil
}

// validateForCheckIn runs every check-in guard without mutating anything.
func (s *checkInService) validateForCheckIn(ctx context.Context, confirmation string) (*entity.Reservation, error) {
	reservation, err := s.repo.Reservation.FindByConfirmationNumber(ctx, confirmation)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, &NotFoundError{Resource: "reservation", Key: confirmation}
	}

	if !reservation.Status.CanTransition(entity.StatusCheckedIn) {
		return nil, &InvalidStateError{
			Current:     reservation.Status,
			Operation:   "check in",
			ValidStates: entity.SourcesOf(entity.StatusCheckedIn),
		}
	}

	if reservation.CheckIn != nil {
		return nil, &ConflictError{Reason: fmt.Sprintf("reservation %s is already checked in", confirmation)}
	}

	today := utils.DateOnly(s.clock.Now().In(s.location)).Format("2006-01-02")
	scheduled := reservation.CheckInDate.Format("2006-01-02")
	if today < scheduled {
		return nil, &InvalidInputError{
			Field:  "confirmation_number",
			Reason: fmt.Sprintf("check-in is scheduled for %s", scheduled),
		}
	}

	return reservation, nil
}

func hotelLocation(hotel utils.HotelConfig) *time.Location {
	loc, err := time.LoadLocation(hotel.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
