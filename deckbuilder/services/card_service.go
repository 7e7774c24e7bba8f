package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
)

// Card counts churn during bulk import, so the count entry expires fast.
const countCardsTTL = 5 * time.Second

const maxSuggestions = 10

// CardService orchestrates catalog lookups, cache-first. The cache is only
// populated after a successful store round-trip; failed or canceled
// operations never write.
type CardService struct {
	repository repositories.CardRepository
	cache      *cache.Cache
}

func NewCardService(repository repositories.CardRepository, store *cache.Cache) *CardService {
	return &CardService{
		repository: repository,
		cache:      store,
	}
}

func (s *CardService) CountCards(ctx context.Context) (int64, error) {
	if count, ok := cache.Get[int64](s.cache, cache.KeyCountCards); ok {
		return count, nil
	}

	count, err := s.repository.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.cache.Set(cache.KeyCountCards, count, countCardsTTL)
	return count, nil
}

func (s *CardService) GetCardByID(ctx context.Context, cardID string) (*models.CardOutput, error) {
	cacheKey := cache.KeyCardByID(cardID)
	if card, ok := cache.Get[*models.CardOutput](s.cache, cacheKey); ok {
		return card, nil
	}

	card, err := s.repository.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.CardNotFoundByID(cardID)
	}

	s.cache.Set(cacheKey, card, cache.DefaultTTL)
	return card, nil
}

func (s *CardService) GetCardBySetAndCode(ctx context.Context, setCode, code string) (*models.CardOutput, error) {
	cacheKey := cache.KeyCardBySetAndCode(setCode, code)
	if card, ok := cache.Get[*models.CardOutput](s.cache, cacheKey); ok {
		return card, nil
	}

	card, err := s.repository.GetBySetAndCode(ctx, setCode, code)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.CardNotFoundBySetAndCode(setCode, code)
	}

	s.cache.Set(cacheKey, card, cache.DefaultTTL)
	return card, nil
}

// GetCardsBySet returns a possibly-empty list; an unknown set is not an
// error.
func (s *CardService) GetCardsBySet(ctx context.Context, setCode string) ([]models.CardOutput, error) {
	cacheKey := cache.KeyCardsBySet(setCode)
	if cards, ok := cache.Get[[]models.CardOutput](s.cache, cacheKey); ok {
		return cards, nil
	}

	cards, err := s.repository.GetBySet(ctx, setCode)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, cards, cache.DefaultTTL)
	return cards, nil
}

// SearchCards runs a structured key=value search when the query parses as
// pairs and falls back to free text otherwise. Only non-empty trimmed
// queries touch the cache, keyed by the literal query string.
func (s *CardService) SearchCards(ctx context.Context, rawQuery string) ([]models.CardOutput, error) {
	query := repositories.ParseSearchQuery(rawQuery)
	if query.IsEmpty() {
		return s.repository.Search(ctx, query)
	}

	cacheKey := cache.KeyCardsSearchByQuery(query.Raw)
	if cards, ok := cache.Get[[]models.CardOutput](s.cache, cacheKey); ok {
		return cards, nil
	}

	cards, err := s.repository.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, cards, cache.DefaultTTL)
	return cards, nil
}

// GetCardDetailsByIDs resolves snapshots for deck assembly. Transient bulk
// use, never cached.
func (s *CardService) GetCardDetailsByIDs(ctx context.Context, cardIDs []string) ([]models.CardOutput, error) {
	return s.repository.GetByIDs(ctx, cardIDs)
}

// SuggestCardNames fuzzy-matches the term against every card's name
// attribute and returns the closest names.
func (s *CardService) SuggestCardNames(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	cards, err := s.repository.Search(ctx, repositories.SearchQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to load cards for suggestions: %w", err)
	}

	names := make([]string, 0, len(cards))
	for i := range cards {
		if name, ok := cards[i].Attributes["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}

	matches := fuzzy.Find(term, names)
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		suggestions = append(suggestions, match.Str)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}
