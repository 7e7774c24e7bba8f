package services

import (
	"context"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
)

// DeckService serves deck reads, enriched with the creating user.
type DeckService struct {
	repository repositories.DeckRepository
	cache      *cache.Cache
}

func NewDeckService(repository repositories.DeckRepository, store *cache.Cache) *DeckService {
	return &DeckService{
		repository: repository,
		cache:      store,
	}
}

func (s *DeckService) SearchDecks(ctx context.Context) ([]models.DeckOutput, error) {
	if decks, ok := cache.Get[[]models.DeckOutput](s.cache, cache.KeyDecksList); ok {
		return decks, nil
	}

	decks, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyDecksList, decks, cache.DefaultTTL)
	return decks, nil
}

func (s *DeckService) GetDeckByID(ctx context.Context, deckID string) (*models.DeckOutput, error) {
	cacheKey := cache.KeyDeckByID(deckID)
	if deck, ok := cache.Get[*models.DeckOutput](s.cache, cacheKey); ok {
		return deck, nil
	}

	deck, err := s.repository.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, apperror.DeckNotFound(deckID)
	}

	s.cache.Set(cacheKey, deck, cache.DefaultTTL)
	return deck, nil
}
