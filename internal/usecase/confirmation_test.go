package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hotel-reservation/pkg/utils"
)

var confirmationPattern = regexp.MustCompile(`^CONF\d{8}[0-9A-F]{4}$`)

// collidingRepo reports the first n uniqueness checks as collisions.
type collidingRepo struct {
	*fakeReservationRepo
	collisions int
	calls      int
}

func (r *collidingRepo) ExistsByConfirmationNumber(ctx context.Context, confirmation string) (bool, error) {
	r.calls++
	return r.calls <= r.collisions, nil
}

func TestConfirmationFormat(t *testing.T) {
	generator := NewConfirmationGenerator(newFakeReservationRepo(), utils.FixedClock{Moment: testNow}, 10)

	confirmation, err := generator.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !confirmationPattern.MatchString(confirmation) {
		t.Fatalf("confirmation %q does not match CONF + 8 digits + 4 hex", confirmation)
	}
}

func TestConfirmationRetriesOnCollision(t *testing.T) {
	repo := &collidingRepo{fakeReservationRepo: newFakeReservationRepo(), collisions: 3}
	generator := NewConfirmationGenerator(repo, utils.FixedClock{Moment: testNow}, 10)

	confirmation, err := generator.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation == "" {
		t.Fatal("expected a confirmation after retries")
	}
	if repo.calls != 4 {
		t.Fatalf("expected 4 uniqueness checks, got %d", repo.calls)
	}
}

func TestConfirmationExhaustsAttempts(t *testing.T) {
	repo := &collidingRepo{fakeReservationRepo: newFakeReservationRepo(), collisions: 100}
	generator := NewConfirmationGenerator(repo, utils.FixedClock{Moment: testNow}, 10)

	_, err := generator.Generate(context.Background())
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if repo.calls != 10 {
		t.Fatalf("expected exactly 10 attempts, got %d", repo.calls)
	}
}
