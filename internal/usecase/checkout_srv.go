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

type CheckOutService interface {
	CheckOut(ctx context.Context, staffID uuid.UUID, req *request.CheckOutRequest) (*response.CheckOutResponse, error)
	Preview(ctx context.Context, req *request.CheckOutPreviewRequest) (*response.CheckOutPreviewResponse, error)
	DueToday(ctx context.Context) ([]*response.ReservationResponse, error)
}

type checkOutService struct {
	repo      *repository.Repository
	pricing   *PricingEngine
	publisher *events.Publisher
	clock     utils.Clock
	location  *time.Location
	log       *zap.Logger
}

func NewCheckOutService(repo *repository.Repository, pricing *PricingEngine, publisher *events.Publisher, hotel utils.HotelConfig, clock utils.Clock, log *zap.Logger) CheckOutService {
	return &checkOutService{
		repo:      repo,
		pricing:   pricing,
		publisher: publisher,
		clock:     clock,
		location:  hotelLocation(hotel),
		log:       log.With(zap.String("service", "checkout")),
	}
}

func (s *checkOutService) CheckOut(ctx context.Context, staffID uuid.UUID, req *request.CheckOutRequest) (*response.CheckOutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	reservation, err := s.validateForCheckOut(ctx, req.ConfirmationNumber)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	charges := buildCharges(req.AdditionalCharges, staffID, now)
	reservation.AdditionalCharges = append(reservation.AdditionalCharges, charges...)

	chargesTotal := RoundAmount(sumCharges(charges))
	lateFee := s.pricing.LateCheckOutFee(reservation, now)
	finalAmount := s.pricing.CheckOutTotal(reservation, charges, now)

	var deposit float64
	if reservation.CheckIn != nil {
		deposit = reservation.CheckIn.DepositAmount
	}
	depositRefund := s.pricing.DepositRefund(deposit, chargesTotal)

	reservation.CheckOut = &entity.CheckOutDetails{
		ActualCheckOutTime: now,
		ProcessedBy:        staffID,
		AdditionalCharges:  chargesTotal,
		LateCheckOutFee:    lateFee,
		FinalAmount:        finalAmount,
		DepositRefund:      depositRefund,
		DamageReported:     req.DamageReported,
		DamageDescription:  req.DamageDescription,
		Notes:              req.Notes,
	}
	reservation.Status = entity.StatusCheckedOut
	reservation.TotalAmount = finalAmount
	reservation.UpdatedAt = now

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("check out reservation: %w", err)
	}

	// Damaged rooms go to maintenance, everything else to housekeeping.
	roomStatus := entity.RoomStatusCleaning
	if req.DamageReported {
		roomStatus = entity.RoomStatusMaintenance
	}
	if err := s.repo.Room.UpdateStatus(ctx, reservation.RoomID, roomStatus); err != nil {
		return nil, fmt.Errorf("update room status: %w", err)
	}

	s.log.Info("Guest checked out",
		zap.String("confirmation_number", reservation.ConfirmationNumber),
		zap.Float64("final_amount", finalAmount),
		zap.Float64("additional_charges", chargesTotal),
		zap.Float64("late_fee", lateFee),
		zap.Bool("damage_reported", req.DamageReported),
	)

	s.publisher.Publish(ctx, events.EventCheckOutCompleted, buildReservationResponse(reservation))

	return &response.CheckOutResponse{
		Reservation:       *buildReservationResponse(reservation),
		CheckOutTime:      now,
		AdditionalCharges: chargesTotal,
		LateCheckOutFee:   lateFee,
		FinalAmount:       finalAmount,
		DepositRefund:     depositRefund,
	}, nil
}

func (s *checkOutService) Preview(ctx context.Context, req *request.CheckOutPreviewRequest) (*response.CheckOutPreviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	reservation, err := s.validateForCheckOut(ctx, req.ConfirmationNumber)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	charges := buildCharges(req.AdditionalCharges, uuid.Nil, now)
	chargesTotal := RoundAmount(sumCharges(charges))
	lateFee := s.pricing.LateCheckOutFee(reservation, now)

	return &response.CheckOutPreviewResponse{
		ConfirmationNumber: reservation.ConfirmationNumber,
		StayTotal:          reservation.TotalAmount,
		AdditionalCharges:  chargesTotal,
		LateCheckOutFee:    lateFee,
		FinalAmount:        s.pricing.CheckOutTotal(reservation, charges, now),
	}, nil
}

func (s *checkOutService) DueToday(ctx context.Context) ([]*response.ReservationResponse, error) {
	today := utils.DateOnly(s.clock.Now().In(s.location))
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	reservations, err := s.repo.Reservation.FindDueCheckOuts(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find due check-outs: %w", err)
	}

	results := make([]*response.ReservationResponse, len(reservations))
	for i, r := range reservations {
		results[i] = buildReservationResponse(r)
	}
	return results, nil
}

func (s *checkOutService) validateForCheckOut(ctx context.Context, confirmation string) (*entity.Reservation, error) {
	reservation, err := s.repo.Reservation.FindByConfirmationNumber(ctx, confirmation)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, &NotFoundError{Resource: "reservation", Key: confirmation}
	}

	if !reservation.Status.CanTransition(entity.StatusCheckedOut) {
		return nil, &InvalidStateError{
			Current:     reservation.Status,
			Operation:   "check out",
			ValidStates: entity.SourcesOf(entity.StatusCheckedOut),
		}
	}

	if reservation.CheckOut != nil {
		return nil, &ConflictError{Reason: fmt.Sprintf("reservation %s is already checked out", confirmation)}
	}

	return reservation, nil
}

func buildCharges(items []request.ChargeItem, staffID uuid.UUID, now time.Time) []entity.AdditionalCharge {
	charges := make([]entity.AdditionalCharge, len(items))
	for i, item := range items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		charges[i] = entity.AdditionalCharge{
			ID:          uuid.New(),
			Description: item.Description,
			Amount:      item.Amount,
			ChargeType:  item.ChargeType,
			Quantity:    quantity,
			ChargedAt:   now,
			ChargedBy:   staffID,
		}
	}
	return charges
}

func sumCharges(charges []entity.AdditionalCharge) float64 {
	var total float64
	for _, c := range charges {
		total += c.Amount
	}
	return total
}
