package storage

import (
	"context"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

// FixtureSource serves the classic nine-item shop.
type FixtureSource struct{}

func (FixtureSource) LoadSeeds(ctx context.Context) ([]domain.Seed, error) {
	return DefaultSeeds(), nil
}

func DefaultSeeds() []domain.Seed {
	return []domain.Seed{
		{Name: "+5 Dexterity Vest", SellIn: 10, Quality: 20},
		{Name: domain.AgedCheeseName, SellIn: 2, Quality: 0},
		{Name: "Elixir of the Mongoose", SellIn: 5, Quality: 7},
		{Name: domain.LegendaryArtifactName, SellIn: 0, Quality: 80},
		{Name: domain.LegendaryArtifactName, SellIn: -1, Quality: 80},
		{Name: domain.EventPassName, SellIn: 15, Quality: 20},
		{Name: domain.EventPassName, SellIn: 10, Quality: 49},
		{Name: domain.EventPassName, SellIn: 5, Quality: 49},
		{Name: domain.ConjuredName, SellIn: 3, Quality: 6},
	}
}
