package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
)

const (
	minimumNumberOfCards  = 2
	maxQuantityOfSameCard = 4
)

// DeckCreationService validates a proposed deck and persists it with
// denormalized card snapshots resolved at creation time.
type DeckCreationService struct {
	repository repositories.DeckRepository
	cards      *CardService
	cache      *cache.Cache
}

func NewDeckCreationService(repository repositories.DeckRepository, cards *CardService, store *cache.Cache) *DeckCreationService {
	return &DeckCreationService{
		repository: repository,
		cards:      cards,
		cache:      store,
	}
}

// validateDeckCreation checks the composition rules in order; the first
// broken rule decides which failure surfaces.
func validateDeckCreation(input *models.CreateDeckInput) error {
	if len(input.Cards) < minimumNumberOfCards {
		return apperror.MinimumNumberOfCardsInDeck(minimumNumberOfCards)
	}

	for _, card := range input.Cards {
		if card.Quantity == 0 {
			return apperror.NoQuantityForDeckCard(card.CardID)
		}
	}

	exceeding := 0
	for _, card := range input.Cards {
		if card.Quantity > maxQuantityOfSameCard {
			exceeding++
		}
	}
	if exceeding > 0 {
		return apperror.NumberOfCardsExceedingAmount(exceeding, maxQuantityOfSameCard)
	}
	return nil
}

// CreateDeck returns the new deck's identity and nothing else; the created
// deck is not re-read post-insert. A card removed from the catalog between
// snapshot resolution and insert is an accepted race.
func (s *DeckCreationService) CreateDeck(ctx context.Context, input *models.CreateDeckInput) (string, error) {
	if err := validateDeckCreation(input); err != nil {
		return "", err
	}

	snapshots, err := s.cards.GetCardDetailsByIDs(ctx, distinctCardIDs(input.Cards))
	if err != nil {
		return "", fmt.Errorf("failed to resolve card snapshots: %w", err)
	}
	detailsByID := make(map[string]map[string]any, len(snapshots))
	for i := range snapshots {
		detailsByID[snapshots[i].ID.Hex()] = snapshots[i].Attributes
	}

	deckCards := make([]models.DeckCard, 0, len(input.Cards))
	for _, card := range input.Cards {
		cardID, err := primitive.ObjectIDFromHex(card.CardID)
		if err != nil {
			return "", fmt.Errorf("invalid card id %q: %w", card.CardID, err)
		}
		deckCards = append(deckCards, models.DeckCard{
			CardID:   cardID,
			Quantity: card.Quantity,
			Notes:    card.Notes,
			Details:  detailsByID[card.CardID],
		})
	}

	deck := &models.Deck{
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   createdByID(input.CreatedBy),
		CreatedAt:   time.Now().UTC(),
		Cards:       deckCards,
	}

	deckID, err := s.repository.Insert(ctx, deck)
	if err != nil {
		return "", err
	}

	s.cache.Invalidate(cache.KeyDecksList)
	return deckID, nil
}

func distinctCardIDs(cards []models.DeckCardInput) []string {
	seen := make(map[string]struct{}, len(cards))
	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		if _, ok := seen[card.CardID]; ok {
			continue
		}
		seen[card.CardID] = struct{}{}
		ids = append(ids, card.CardID)
	}
	return ids
}

func createdByID(createdBy string) primitive.ObjectID {
	if id, err := primitive.ObjectIDFromHex(createdBy); err == nil {
		return id
	}
	return primitive.NewObjectID()
}
