package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/dto/request"

	"github.com/google/uuid"
)

func createRequest(roomID, checkIn, checkOut string) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		RoomID:       roomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       2,
	}
}

func TestCreateReservation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()
	guestID := uuid.New()

	resp, err := service.CreateReservation(context.Background(), guestID, createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != string(entity.StatusPreReservation) {
		t.Fatalf("expected PRE_RESERVATION, got %s", resp.Status)
	}
	if resp.TotalAmount != 1200000 {
		t.Fatalf("expected total 1200000, got %v", resp.TotalAmount)
	}
	if resp.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", resp.Nights)
	}
	if !confirmationPattern.MatchString(resp.ConfirmationNumber) {
		t.Fatalf("unexpected confirmation format %q", resp.ConfirmationNumber)
	}

	stored, _ := env.reservations.FindByConfirmationNumber(context.Background(), resp.ConfirmationNumber)
	if stored == nil {
		t.Fatal("reservation not persisted")
	}
	if stored.CancellationPolicy == nil || stored.CancellationPolicy.FreeCancellationDeadline == nil {
		t.Fatal("expected a cancellation policy snapshot")
	}
	if stored.Currency != "COP" {
		t.Fatalf("expected COP, got %s", stored.Currency)
	}
}

func TestCreateReservationUnknownRoom(t *testing.T) {
	env := newTestEnv()
	service := env.reservationService()

	_, err := service.CreateReservation(context.Background(), uuid.New(), createRequest(uuid.New().String(), "2026-09-06", "2026-09-09"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateReservationRoomNotBookable(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	env.rooms.UpdateStatus(context.Background(), room.ID, entity.RoomStatusMaintenance)
	service := env.reservationService()

	_, err := service.CreateReservation(context.Background(), uuid.New(), createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCreateReservationTooManyGuests(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()

	req := createRequest(room.ID.String(), "2026-09-06", "2026-09-09")
	req.Adults = 3

	_, err := service.CreateReservation(context.Background(), uuid.New(), req)
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestCreateReservationStayTooLong(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()

	_, err := service.CreateReservation(context.Background(), uuid.New(), createRequest(room.ID.String(), "2026-09-06", "2026-10-10"))
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestCreateReservationConflict(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	existing := env.addReservation(room, uuid.New(), "2026-09-07", "2026-09-10", entity.StatusConfirmed)
	service := env.reservationService()

	_, err := service.CreateReservation(context.Background(), uuid.New(), createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
	var notAvailable *RoomNotAvailableError
	if !errors.As(err, &notAvailable) {
		t.Fatalf("expected RoomNotAvailableError, got %v", err)
	}
	if len(notAvailable.ConflictsWith) != 1 || notAvailable.ConflictsWith[0] != existing.ConfirmationNumber {
		t.Fatalf("expected conflict with %s, got %v", existing.ConfirmationNumber, notAvailable.ConflictsWith)
	}
}

func TestCreateReservationConcurrentDoubleBooking(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.CreateReservation(context.Background(), uuid.New(), createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var notAvailable *RoomNotAvailableError
		if errors.As(err, &notAvailable) {
			conflicts++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}
}

func TestUpdateReservationDatesBeforeConfirmation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()
	guestID := uuid.New()

	created, err := service.CreateReservation(context.Background(), guestID, createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shifted dates overlap the original stay; the reservation must not
	// conflict with itself.
	newIn, newOut := "2026-09-07", "2026-09-11"
	updated, err := service.UpdateReservation(context.Background(), guestID, entity.RoleGuest, created.ID, &request.UpdateReservationRequest{
		CheckInDate:  &newIn,
		CheckOutDate: &newOut,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CheckInDate != newIn || updated.CheckOutDate != newOut {
		t.Fatalf("dates not updated: %s to %s", updated.CheckInDate, updated.CheckOutDate)
	}
	if updated.TotalAmount != 1600000 {
		t.Fatalf("expected repriced total 1600000, got %v", updated.TotalAmount)
	}
}

func TestUpdateReservationDatesAfterConfirmation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-09-06", "2026-09-09", entity.StatusConfirmed)
	service := env.reservationService()

	newIn := "2026-09-07"
	_, err := service.UpdateReservation(context.Background(), reservation.GuestID, entity.RoleGuest, reservation.ID.String(), &request.UpdateReservationRequest{
		CheckInDate: &newIn,
	})
	var invalidState *InvalidStateError
	if !errors.As(err, &invalidState) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestUpdateReservationGuestCountAfterConfirmation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 3, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-09-06", "2026-09-09", entity.StatusConfirmed)
	service := env.reservationService()

	adults := 3
	updated, err := service.UpdateReservation(context.Background(), reservation.GuestID, entity.RoleGuest, reservation.ID.String(), &request.UpdateReservationRequest{
		Adults: &adults,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Adults != 3 {
		t.Fatalf("expected 3 adults, got %d", updated.Adults)
	}
}

func TestUpdateReservationAfterCheckIn(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-08-30", "2026-09-02", entity.StatusCheckedIn)
	service := env.reservationService()

	adults := 1
	_, err := service.UpdateReservation(context.Background(), reservation.GuestID, entity.RoleGuest, reservation.ID.String(), &request.UpdateReservationRequest{
		Adults: &adults,
	})
	var invalidState *InvalidStateError
	if !errors.As(err, &invalidState) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestCancelReservationFreeBeforeDeadline(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()
	guestID := uuid.New()

	created, err := service.CreateReservation(context.Background(), guestID, createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, err := service.CancelReservation(context.Background(), guestID, entity.RoleGuest, created.ID, &request.CancelReservationRequest{Reason: "change of plans"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != string(entity.StatusCancelled) {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.CancellationFee != 0 {
		t.Fatalf("expected no fee before the deadline, got %v", cancelled.CancellationFee)
	}
	if cancelled.RefundAmount != 1200000 {
		t.Fatalf("expected full refund, got %v", cancelled.RefundAmount)
	}
}

func TestCancelReservationFeeAfterDeadline(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()
	guestID := uuid.New()

	// Check-in tomorrow: the 24 hour deadline has already passed
	created, err := service.CreateReservation(context.Background(), guestID, createRequest(room.ID.String(), "2026-09-02", "2026-09-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, err := service.CancelReservation(context.Background(), guestID, entity.RoleGuest, created.ID, &request.CancelReservationRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.CancellationFee != 120000 {
		t.Fatalf("expected fee 120000, got %v", cancelled.CancellationFee)
	}
	if cancelled.RefundAmount != 1080000 {
		t.Fatalf("expected refund 1080000, got %v", cancelled.RefundAmount)
	}
}

func TestCancelReservationAfterCheckOut(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-08-25", "2026-08-28", entity.StatusCheckedOut)
	service := env.reservationService()

	_, err := service.CancelReservation(context.Background(), reservation.GuestID, entity.RoleGuest, reservation.ID.String(), &request.CancelReservationRequest{})
	var invalidState *InvalidStateError
	if !errors.As(err, &invalidState) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestConfirmReservation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	service := env.reservationService()
	guestID := uuid.New()

	created, err := service.CreateReservation(context.Background(), guestID, createRequest(room.ID.String(), "2026-09-06", "2026-09-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirmed, err := service.ConfirmReservation(context.Background(), guestID, entity.RoleGuest, created.ID, &request.ConfirmReservationRequest{PaymentReference: "PAY-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.Status != string(entity.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", confirmed.Status)
	}
}

func TestConfirmCancelledReservation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-09-06", "2026-09-09", entity.StatusCancelled)
	service := env.reservationService()

	_, err := service.ConfirmReservation(context.Background(), reservation.GuestID, entity.RoleGuest, reservation.ID.String(), &request.ConfirmReservationRequest{PaymentReference: "PAY-123"})
	var invalidState *InvalidStateError
	if !errors.As(err, &invalidState) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestGuestCannotAccessOthersReservation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-09-06", "2026-09-09", entity.StatusConfirmed)
	service := env.reservationService()

	_, err := service.GetReservation(context.Background(), uuid.New(), entity.RoleGuest, reservation.ID.String())
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}

	// Staff can read any reservation
	if _, err := service.GetReservation(context.Background(), uuid.New(), entity.RoleStaff, reservation.ID.String()); err != nil {
		t.Fatalf("unexpected error for staff: %v", err)
	}
}

func TestGetByConfirmation(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	reservation := env.addReservation(room, uuid.New(), "2026-09-06", "2026-09-09", entity.StatusConfirmed)
	service := env.reservationService()

	found, err := service.GetByConfirmation(context.Background(), reservation.GuestID, entity.RoleGuest, reservation.ConfirmationNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != reservation.ID.String() {
		t.Fatalf("expected reservation %s, got %s", reservation.ID, found.ID)
	}

	_, err = service.GetByConfirmation(context.Background(), reservation.GuestID, entity.RoleGuest, "CONF00000000XXXX")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
