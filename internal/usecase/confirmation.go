package usecase

import (
	"context"
	"fmt"
	"strings"

	"hotel-reservation/internal/data/repository"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
)

// ConfirmationGenerator mints human-readable reservation codes:
// "CONF" + 8 time-derived digits + 4 random hex chars. The random
// component is regenerated on collision up to maxAttempts.
type ConfirmationGenerator struct {
	repo        repository.ReservationRepository
	clock       utils.Clock
	maxAttempts int
}

func NewConfirmationGenerator(repo repository.ReservationRepository, clock utils.Clock, maxAttempts int) *ConfirmationGenerator {
	return &ConfirmationGenerator{
		repo:        repo,
		clock:       clock,
		maxAttempts: maxAttempts,
	}
}

func (g *ConfirmationGenerator) Generate(ctx context.Context) (string, error) {
	timestamp := fmt.Sprintf("%08d", g.clock.Now().UnixMilli()%100000000)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		random := strings.ToUpper(uuid.New().String()[:4])
		candidate := "CONF" + timestamp + random

		exists, err := g.repo.ExistsByConfirmationNumber(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check confirmation uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", &ConflictError{
		Reason: fmt.Sprintf("could not generate a unique confirmation number after %d attempts", g.maxAttempts),
	}
}
