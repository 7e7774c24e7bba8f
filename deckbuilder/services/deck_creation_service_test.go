package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories/mock"
)

func TestValidateDeckCreation(t *testing.T) {
	cardA := primitive.NewObjectID().Hex()
	cardB := primitive.NewObjectID().Hex()
	cardC := primitive.NewObjectID().Hex()

	tests := []struct {
		name     string
		cards    []models.DeckCardInput
		wantCode string
		wantIn   string
	}{
		{
			name:     "no cards",
			cards:    nil,
			wantCode: apperror.CodeMinimumNumberOfCardsInDeck,
		},
		{
			name:     "one card",
			cards:    []models.DeckCardInput{{CardID: cardA, Quantity: 1}},
			wantCode: apperror.CodeMinimumNumberOfCardsInDeck,
		},
		{
			name: "first missing quantity is named",
			cards: []models.DeckCardInput{
				{CardID: cardA, Quantity: 1},
				{CardID: cardB},
				{CardID: cardC},
			},
			wantCode: apperror.CodeNoQuantityForDeckCard,
			wantIn:   cardB,
		},
		{
			name: "missing quantity reported before excess copies",
			cards: []models.DeckCardInput{
				{CardID: cardA, Quantity: 9},
				{CardID: cardB},
			},
			wantCode: apperror.CodeNoQuantityForDeckCard,
			wantIn:   cardB,
		},
		{
			name: "excess copies counted",
			cards: []models.DeckCardInput{
				{CardID: cardA, Quantity: 5},
				{CardID: cardB, Quantity: 2},
				{CardID: cardC, Quantity: 6},
			},
			wantCode: apperror.CodeNumberOfCardsExceedingAmount,
			wantIn:   "2 card(s)",
		},
		{
			name: "valid deck",
			cards: []models.DeckCardInput{
				{CardID: cardA, Quantity: 4},
				{CardID: cardB, Quantity: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDeckCreation(&models.CreateDeckInput{Cards: tt.cards})
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("validateDeckCreation() error = %v, want nil", err)
				}
				return
			}

			var known *apperror.KnownError
			if !errors.As(err, &known) {
				t.Fatalf("validateDeckCreation() error = %v, want KnownError", err)
			}
			if known.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", known.Code, tt.wantCode)
			}
			if tt.wantIn != "" && !strings.Contains(known.Message, tt.wantIn) {
				t.Errorf("message %q does not mention %q", known.Message, tt.wantIn)
			}
		})
	}
}

func TestDeckCreationService_CreateDeck(t *testing.T) {
	ctrl := gomock.NewController(t)

	cardA := primitive.NewObjectID()
	cardB := primitive.NewObjectID()
	creator := primitive.NewObjectID()
	deckID := primitive.NewObjectID().Hex()

	snapshots := []models.CardOutput{
		{ID: cardA, Attributes: map[string]any{"name": "Fluffy"}},
		{ID: cardB, Attributes: map[string]any{"name": "Norbert"}},
	}

	cardRepo := mock.NewMockCardRepository(ctrl)
	cardRepo.EXPECT().
		GetByIDs(gomock.Any(), []string{cardA.Hex(), cardB.Hex()}).
		Return(snapshots, nil)

	deckRepo := mock.NewMockDeckRepository(ctrl)
	deckRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deck *models.Deck) (string, error) {
			if deck.CreatedBy != creator {
				t.Errorf("CreatedBy = %s, want %s", deck.CreatedBy.Hex(), creator.Hex())
			}
			if deck.CreatedAt.IsZero() {
				t.Error("CreatedAt not set")
			}
			if len(deck.Cards) != 2 {
				t.Fatalf("deck has %d cards, want 2", len(deck.Cards))
			}
			if deck.Cards[0].Details["name"] != "Fluffy" {
				t.Errorf("first card snapshot = %v", deck.Cards[0].Details)
			}
			if deck.Cards[1].Quantity != 4 {
				t.Errorf("second card quantity = %d, want 4", deck.Cards[1].Quantity)
			}
			return deckID, nil
		})

	store, err := cache.New(0)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	store.Set(cache.KeyDecksList, []models.DeckOutput{}, cache.DefaultTTL)

	service := NewDeckCreationService(deckRepo, NewCardService(cardRepo, store), store)

	got, err := service.CreateDeck(context.Background(), &models.CreateDeckInput{
		Title:     "Care of Magical Creatures",
		CreatedBy: creator.Hex(),
		Cards: []models.DeckCardInput{
			{CardID: cardA.Hex(), Quantity: 2},
			{CardID: cardB.Hex(), Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("CreateDeck() error = %v", err)
	}
	if got != deckID {
		t.Errorf("CreateDeck() = %s, want %s", got, deckID)
	}

	if _, ok := cache.Get[[]models.DeckOutput](store, cache.KeyDecksList); ok {
		t.Error("decks list cache entry survived deck creation")
	}
}

func TestDeckCreationService_CreateDeck_GeneratesCreator(t *testing.T) {
	ctrl := gomock.NewController(t)

	cardA := primitive.NewObjectID()
	cardB := primitive.NewObjectID()

	cardRepo := mock.NewMockCardRepository(ctrl)
	cardRepo.EXPECT().
		GetByIDs(gomock.Any(), gomock.Any()).
		Return([]models.CardOutput{{ID: cardA}, {ID: cardB}}, nil)

	deckRepo := mock.NewMockDeckRepository(ctrl)
	deckRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deck *models.Deck) (string, error) {
			if deck.CreatedBy.IsZero() {
				t.Error("CreatedBy not generated for missing creator")
			}
			return primitive.NewObjectID().Hex(), nil
		})

	store, err := cache.New(0)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}

	service := NewDeckCreationService(deckRepo, NewCardService(cardRepo, store), store)

	if _, err := service.CreateDeck(context.Background(), &models.CreateDeckInput{
		Cards: []models.DeckCardInput{
			{CardID: cardA.Hex(), Quantity: 1},
			{CardID: cardB.Hex(), Quantity: 1},
		},
	}); err != nil {
		t.Fatalf("CreateDeck() error = %v", err)
	}
}
