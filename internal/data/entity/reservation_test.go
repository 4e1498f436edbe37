package entity

import (
	"testing"
	"time"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		StatusPreReservation: {StatusPendingPayment, StatusConfirmed, StatusCancelled},
		StatusPendingPayment: {StatusConfirmed, StatusCancelled},
		StatusConfirmed:      {StatusCheckedIn, StatusCancelled, StatusNoShow},
		StatusCheckedIn:      {StatusCheckedOut},
		StatusCheckedOut:     nil,
		StatusCancelled:      nil,
		StatusNoShow:         nil,
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, target := range allowed[from] {
				if target == to {
					want = true
				}
			}
			if got := from.CanTransition(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []ReservationStatus{StatusCheckedOut, StatusCancelled, StatusNoShow} {
		for _, to := range AllStatuses() {
			if terminal.CanTransition(to) {
				t.Fatalf("%s must be terminal but can reach %s", terminal, to)
			}
		}
	}
}

func TestSourcesOf(t *testing.T) {
	sources := SourcesOf(StatusCancelled)
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources for CANCELLED, got %v", sources)
	}

	sources = SourcesOf(StatusCheckedOut)
	if len(sources) != 1 || sources[0] != StatusCheckedIn {
		t.Fatalf("expected only CHECKED_IN to reach CHECKED_OUT, got %v", sources)
	}
}

func TestBlockingStatuses(t *testing.T) {
	blocking := map[ReservationStatus]bool{
		StatusPreReservation: true,
		StatusConfirmed:      true,
		StatusCheckedIn:      true,
	}
	for _, status := range AllStatuses() {
		if got := status.IsBlocking(); got != blocking[status] {
			t.Fatalf("%s: expected blocking=%v, got %v", status, blocking[status], got)
		}
	}
	if len(BlockingStatuses()) != 3 {
		t.Fatalf("expected 3 blocking statuses, got %v", BlockingStatuses())
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}
	reservation := &Reservation{CheckInDate: day(5), CheckOutDate: day(10)}

	cases := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"inside", day(6), day(8), true},
		{"same range", day(5), day(10), true},
		{"ends on check-in day", day(2), day(5), false},
		{"starts on checkout day", day(10), day(12), false},
		{"straddles start", day(3), day(7), true},
		{"straddles end", day(8), day(12), true},
		{"disjoint before", day(1), day(3), false},
		{"disjoint after", day(11), day(14), false},
	}
	for _, c := range cases {
		if got := reservation.Overlaps(c.in, c.out); got != c.overlaps {
			t.Fatalf("%s: expected %v, got %v", c.name, c.overlaps, got)
		}
	}
}

func TestNights(t *testing.T) {
	reservation := &Reservation{
		CheckInDate:  time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	}
	if reservation.Nights() != 3 {
		t.Fatalf("expected 3 nights, got %d", reservation.Nights())
	}
}
