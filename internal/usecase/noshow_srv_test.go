package usecase

import (
	"context"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
)

func TestSweepNoShowsBeforeDeadlineHour(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	other := env.addRoom("302", 2, 400000)
	overdue := env.addReservation(room, uuid.New(), "2026-08-31", "2026-09-03", entity.StatusConfirmed)
	today := env.addReservation(other, uuid.New(), "2026-09-01", "2026-09-04", entity.StatusConfirmed)

	// 10:00, before the 18:00 deadline: today's arrivals get more time
	service := env.noShowService(utils.FixedClock{Moment: testNow})

	result, err := service.SweepNoShows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MarkedNoShow != 1 {
		t.Fatalf("expected 1 no-show, got %d", result.MarkedNoShow)
	}
	if result.Confirmations[0] != overdue.ConfirmationNumber {
		t.Fatalf("expected %s marked, got %v", overdue.ConfirmationNumber, result.Confirmations)
	}

	stored, _ := env.reservations.FindByID(context.Background(), today.ID)
	if stored.Status != entity.StatusConfirmed {
		t.Fatalf("today's arrival must stay CONFIRMED, got %s", stored.Status)
	}
}

func TestSweepNoShowsAfterDeadlineHour(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	today := env.addReservation(room, uuid.New(), "2026-09-01", "2026-09-04", entity.StatusConfirmed)

	evening := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	service := env.noShowService(utils.FixedClock{Moment: evening})

	result, err := service.SweepNoShows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MarkedNoShow != 1 {
		t.Fatalf("expected today's arrival marked after 18:00, got %d", result.MarkedNoShow)
	}

	stored, _ := env.reservations.FindByID(context.Background(), today.ID)
	if stored.Status != entity.StatusNoShow {
		t.Fatalf("expected NO_SHOW, got %s", stored.Status)
	}
}

func TestSweepNoShowsSkipsCheckedInGuests(t *testing.T) {
	env := newTestEnv()
	room := env.addRoom("301", 2, 400000)
	env.addReservation(room, uuid.New(), "2026-08-30", "2026-09-02", entity.StatusCheckedIn)

	service := env.noShowService(utils.FixedClock{Moment: testNow})

	result, err := service.SweepNoShows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MarkedNoShow != 0 {
		t.Fatalf("expected no sweeps, got %d", result.MarkedNoShow)
	}
}

func TestSweepNoShowsEmpty(t *testing.T) {
	env := newTestEnv()
	service := env.noShowService(utils.FixedClock{Moment: testNow})

	result, err := service.SweepNoShows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MarkedNoShow != 0 {
		t.Fatalf("expected an empty sweep, got %d", result.MarkedNoShow)
	}
}
