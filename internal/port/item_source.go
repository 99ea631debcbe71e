package port

import (
	"context"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

type ItemSource interface {
	// LoadSeeds returns the shop's starting items in shelf order.
	LoadSeeds(ctx context.Context) ([]domain.Seed, error)
}
