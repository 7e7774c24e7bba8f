package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories/mock"
)

func TestDeckService_SearchDecks_Cached(t *testing.T) {
	ctrl := gomock.NewController(t)

	decks := []models.DeckOutput{{ID: primitive.NewObjectID(), Title: "Starter"}}

	repo := mock.NewMockDeckRepository(ctrl)
	repo.EXPECT().
		GetAll(gomock.Any()).
		Return(decks, nil).
		Times(1)

	store, err := cache.New(0)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	service := NewDeckService(repo, store)

	for i := 0; i < 2; i++ {
		got, err := service.SearchDecks(context.Background())
		if err != nil {
			t.Fatalf("SearchDecks() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Starter" {
			t.Errorf("SearchDecks() = %v", got)
		}
	}
}

func TestDeckService_GetDeckByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockDeckRepository(ctrl)
	repo.EXPECT().
		GetByID(gomock.Any(), "missing").
		Return(nil, nil)

	store, err := cache.New(0)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	service := NewDeckService(repo, store)

	_, err = service.GetDeckByID(context.Background(), "missing")
	var known *apperror.KnownError
	if !errors.As(err, &known) || known.Code != apperror.CodeDeckNotFound {
		t.Fatalf("GetDeckByID() error = %v, want %s", err, apperror.CodeDeckNotFound)
	}
}
