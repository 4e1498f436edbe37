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

type ReservationService interface {
	CreateReservation(ctx context.Context, guestID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string) (*response.ReservationResponse, error)
	GetByConfirmation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, confirmation string) (*response.ReservationResponse, error)
	ListGuestReservations(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*response.ReservationResponse, error)
	UpdateReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error)
	ConfirmReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo         *repository.Repository
	availability AvailabilityService
	pricing      *PricingEngine
	confirmation *ConfirmationGenerator
	locks        *roomLocks
	publisher    *events.Publisher
	hotel        utils.HotelConfig
	clock        utils.Clock
	log          *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	availability AvailabilityService,
	pricing *PricingEngine,
	confirmation *ConfirmationGenerator,
	publisher *events.Publisher,
	hotel utils.HotelConfig,
	clock utils.Clock,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:         repo,
		availability: availability,
		pricing:      pricing,
		confirmation: confirmation,
		locks:        newRoomLocks(),
		publisher:    publisher,
		hotel:        hotel,
		clock:        clock,
		log:          log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, guestID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, &InvalidInputError{Field: "room_id", Reason: "must be a valid UUID"}
	}

	checkIn, checkOut, err := s.validateStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	totalGuests := req.Adults + req.Children
	if totalGuests > s.hotel.MaxGuests {
		return nil, &InvalidInputError{Field: "adults", Reason: fmt.Sprintf("total guests must not exceed %d", s.hotel.MaxGuests)}
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, &NotFoundError{Resource: "room", Key: req.RoomID}
	}
	if !room.IsBookable() {
		return nil, &ConflictError{Reason: fmt.Sprintf("room %s is not open for booking", room.RoomNumber)}
	}

	if err := validateGuestCount(room, totalGuests); err != nil {
		return nil, err
	}

	// Conflict check and insert are serialized per room; without the
	// lock two concurrent bookings could both pass the check.
	unlock := s.locks.Lock(roomID)
	defer unlock()

	conflicts, err := s.availability.FindConflicts(ctx, roomID, checkIn, checkOut, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, roomNotAvailable(room, req.CheckInDate, req.CheckOutDate, conflicts)
	}

	total := s.pricing.PriceStay(room, checkIn, checkOut, totalGuests)

	confirmationNumber, err := s.confirmation.Generate(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ConfirmationNumber: confirmationNumber,
		GuestID:            guestID,
		RoomID:             roomID,
		CheckInDate:        checkIn,
		CheckOutDate:       checkOut,
		Adults:             req.Adults,
		Children:           req.Children,
		TotalAmount:        total,
		Currency:           "COP",
		Status:             entity.StatusPreReservation,
		SpecialRequests:    req.SpecialRequests,
		BookingSource:      "DIRECT",
		PaymentMethod:      req.PaymentMethod,
		CancellationPolicy: s.pricing.SnapshotCancellationPolicy(checkIn),
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("confirmation_number", confirmationNumber),
		zap.String("guest_id", guestID.String()),
		zap.String("room_number", room.RoomNumber),
		zap.Float64("total_amount", total),
	)

	s.publisher.Publish(ctx, events.EventReservationCreated, buildReservationResponse(reservation))

	return buildReservationResponse(reservation), nil
}

func (s *reservationService) GetReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := validateAccess(reservation, actorID, actorRole); err != nil {
		return nil, err
	}
	return buildReservationResponse(reservation), nil
}

func (s *reservationService) GetByConfirmation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, confirmation string) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindByConfirmationNumber(ctx, confirmation)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, &NotFoundError{Resource: "reservation", Key: confirmation}
	}
	if err := validateAccess(reservation, actorID, actorRole); err != nil {
		return nil, err
	}
	return buildReservationResponse(reservation), nil
}

func (s *reservationService) ListGuestReservations(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindByGuestID(ctx, guestID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list guest reservations: %w", err)
	}

	results := make([]*response.ReservationResponse, len(reservations))
	for i, r := range reservations {
		results[i] = buildReservationResponse(r)
	}
	return results, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := validateAccess(reservation, actorID, actorRole); err != nil {
		return nil, err
	}

	if reservation.Status != entity.StatusPreReservation && reservation.Status != entity.StatusConfirmed {
		return nil, &InvalidStateError{
			Current:     reservation.Status,
			Operation:   "modify",
			ValidStates: []entity.ReservationStatus{entity.StatusPreReservation, entity.StatusConfirmed},
		}
	}

	newRoomID := reservation.RoomID
	if req.RoomID != nil {
		newRoomID, err = uuid.Parse(*req.RoomID)
		if err != nil {
			return nil, &InvalidInputError{Field: "room_id", Reason: "must be a valid UUID"}
		}
	}

	newCheckInStr := reservation.CheckInDate.Format("2006-01-02")
	newCheckOutStr := reservation.CheckOutDate.Format("2006-01-02")
	if req.CheckInDate != nil {
		newCheckInStr = *req.CheckInDate
	}
	if req.CheckOutDate != nil {
		newCheckOutStr = *req.CheckOutDate
	}

	stayChanged := newRoomID != reservation.RoomID ||
		newCheckInStr != reservation.CheckInDate.Format("2006-01-02") ||
		newCheckOutStr != reservation.CheckOutDate.Format("2006-01-02")

	// Date or room changes are only allowed before confirmation.
	if stayChanged && reservation.Status != entity.StatusPreReservation {
		return nil, &InvalidStateError{
			Current:     reservation.Status,
			Operation:   "modify dates or room",
			ValidStates: []entity.ReservationStatus{entity.StatusPreReservation},
		}
	}

	if req.Adults != nil {
		reservation.Adults = *req.Adults
	}
	if req.Children != nil {
		reservation.Children = *req.Children
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}

	if reservation.TotalGuests() > s.hotel.MaxGuests {
		return nil, &InvalidInputError{Field: "adults", Reason: fmt.Sprintf("total guests must not exceed %d", s.hotel.MaxGuests)}
	}

	if stayChanged {
		checkIn, checkOut, err := s.validateStayDates(newCheckInStr, newCheckOutStr)
		if err != nil {
			return nil, err
		}

		room, err := s.repo.Room.FindByID(ctx, newRoomID)
		if err != nil {
			return nil, fmt.Errorf("find room: %w", err)
		}
		if room == nil {
			return nil, &NotFoundError{Resource: "room", Key: newRoomID.String()}
		}
		if !room.IsBookable() {
			return nil, &ConflictError{Reason: fmt.Sprintf("room %s is not open for booking", room.RoomNumber)}
		}
		if err := validateGuestCount(room, reservation.TotalGuests()); err != nil {
			return nil, err
		}

		unlock := s.locks.Lock(newRoomID)
		defer unlock()

		// The reservation itself must not count as a conflict.
		conflicts, err := s.availability.FindConflicts(ctx, newRoomID, checkIn, checkOut, &reservation.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, roomNotAvailable(room, newCheckInStr, newCheckOutStr, conflicts)
		}

		reservation.RoomID = newRoomID
		reservation.CheckInDate = checkIn
		reservation.CheckOutDate = checkOut
		reservation.TotalAmount = s.pricing.PriceStay(room, checkIn, checkOut, reservation.TotalGuests())
		reservation.CancellationPolicy = s.pricing.SnapshotCancellationPolicy(checkIn)
	} else if req.Adults != nil || req.Children != nil {
		room, err := s.repo.Room.FindByID(ctx, reservation.RoomID)
		if err != nil {
			return nil, fmt.Errorf("find room: %w", err)
		}
		if room == nil {
			return nil, &NotFoundError{Resource: "room", Key: reservation.RoomID.String()}
		}
		if err := validateGuestCount(room, reservation.TotalGuests()); err != nil {
			return nil, err
		}
		reservation.TotalAmount = s.pricing.PriceStay(room, reservation.CheckInDate, reservation.CheckOutDate, reservation.TotalGuests())
	}

	reservation.UpdatedAt = s.clock.Now()
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.log.Info("Reservation updated",
		zap.String("reservation_id", reservation.ID.String()),
		zap.Bool("stay_changed", stayChanged),
	)

	return buildReservationResponse(reservation), nil
}

func (s *reservationService) CancelReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := validateAccess(reservation, actorID, actorRole); err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransition(entity.StatusCancelled) {
		return nil, &InvalidStateError{
			Current:     reservation.Status,
			Operation:   "cancel",
			ValidStates: entity.SourcesOf(entity.StatusCancelled),
		}
	}

	fee := s.pricing.CancellationFee(reservation)
	refund := s.pricing.RefundAmount(reservation, fee)

	now := s.clock.Now()
	reservation.Status = entity.StatusCancelled
	reservation.CancellationFee = fee
	reservation.RefundAmount = refund
	reservation.CancelledAt = &now
	reservation.CancelledBy = &actorID
	reservation.CancellationReason = req.Reason
	reservation.UpdatedAt = now

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("confirmation_number", reservation.ConfirmationNumber),
		zap.Float64("cancellation_fee", fee),
		zap.Float64("refund_amount", refund),
	)

	s.publisher.Publish(ctx, events.EventReservationCancelled, buildReservationResponse(reservation))

	return buildReservationResponse(reservation), nil
}

func (s *reservationService) ConfirmReservation(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, reservationID string, req *request.ConfirmReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := validateAccess(reservation, actorID, actorRole); err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransition(entity.StatusConfirmed) {
		return nil, &InvalidStateError{
			Current:     reservation.Status,
			Operation:   "confirm",
			ValidStates: entity.SourcesOf(entity.StatusConfirmed),
		}
	}

	reservation.Status = entity.StatusConfirmed
	reservation.PaymentReference = req.PaymentReference
	reservation.UpdatedAt = s.clock.Now()

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("confirm reservation: %w", err)
	}

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("confirmation_number", reservation.ConfirmationNumber),
	)

	s.publisher.Publish(ctx, events.EventReservationConfirmed, buildReservationResponse(reservation))

	return buildReservationResponse(reservation), nil
}

func (s *reservationService) findReservation(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, &InvalidInputError{Field: "reservation_id", Reason: "must be a valid UUID"}
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, &NotFoundError{Resource: "reservation", Key: reservationID}
	}
	return reservation, nil
}

func (s *reservationService) validateStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_in_date", Reason: "must be a date in YYYY-MM-DD format"}
	}
	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_out_date", Reason: "must be a date in YYYY-MM-DD format"}
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_out_date", Reason: "must be after check-in date"}
	}

	today := utils.DateOnly(s.clock.Now().UTC())
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_in_date", Reason: "must not be in the past"}
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights > s.hotel.MaxStayNights {
		return time.Time{}, time.Time{}, &InvalidInputError{Field: "check_out_date", Reason: fmt.Sprintf("stay must not exceed %d nights", s.hotel.MaxStayNights)}
	}

	return checkIn, checkOut, nil
}

// validateGuestCount enforces room capacity plus the extra-bed rule.
func validateGuestCount(room *entity.Room, totalGuests int) error {
	if totalGuests <= room.Capacity {
		return nil
	}
	if room.Rules != nil && room.Rules.AllowExtraBed && totalGuests <= room.MaxOccupancy() {
		return nil
	}
	return &InvalidInputError{
		Field:  "adults",
		Reason: fmt.Sprintf("room %s accommodates at most %d guests", room.RoomNumber, room.MaxOccupancy()),
	}
}

// validateAccess allows staff to act on any reservation and guests only
// on their own.
func validateAccess(reservation *entity.Reservation, actorID uuid.UUID, actorRole entity.Role) error {
	if actorRole.Can(entity.RoleStaff) {
		return nil
	}
	if reservation.GuestID != actorID {
		return &ForbiddenError{Reason: "cannot access another guest's reservation"}
	}
	return nil
}

func roomNotAvailable(room *entity.Room, checkIn, checkOut string, conflicts []*entity.Reservation) error {
	confirmations := make([]string, len(conflicts))
	for i, c := range conflicts {
		confirmations[i] = c.ConfirmationNumber
	}
	return &RoomNotAvailableError{
		RoomNumber:    room.RoomNumber,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		ConflictsWith: confirmations,
	}
}

func buildReservationResponse(r *entity.Reservation) *response.ReservationResponse {
	return &response.ReservationResponse{
		ID:                 r.ID.String(),
		ConfirmationNumber: r.ConfirmationNumber,
		GuestID:            r.GuestID.String(),
		RoomID:             r.RoomID.String(),
		CheckInDate:        r.CheckInDate.Format("2006-01-02"),
		CheckOutDate:       r.CheckOutDate.Format("2006-01-02"),
		Nights:             r.Nights(),
		Adults:             r.Adults,
		Children:           r.Children,
		TotalAmount:        r.TotalAmount,
		Currency:           r.Currency,
		Status:             string(r.Status),
		SpecialRequests:    r.SpecialRequests,
		CancellationFee:    r.CancellationFee,
		RefundAmount:       r.RefundAmount,
		CreatedAt:          r.CreatedAt,
	}
}
