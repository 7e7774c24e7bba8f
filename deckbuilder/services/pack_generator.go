package services

import (
	"context"
	"fmt"

	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
)

// PackGenerator draws rarity-stratified random packs. Packs must be fresh
// per call, so nothing here touches the cache.
type PackGenerator struct {
	repository repositories.CardRepository
}

func NewPackGenerator(repository repositories.CardRepository) *PackGenerator {
	return &PackGenerator{repository: repository}
}

// GenerateRandomPack returns up to 15 flattened cards for the set: 1
// rare-or-premium, 2 uncommon and 12 common, deduplicated by card id. A tier
// pool smaller than its sample size yields fewer cards, not an error.
func (g *PackGenerator) GenerateRandomPack(ctx context.Context, setCode string) ([]models.CardOutput, error) {
	pack, err := g.repository.GenerateRandomPack(ctx, setCode)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pack for set %s: %w", setCode, err)
	}
	return pack, nil
}
