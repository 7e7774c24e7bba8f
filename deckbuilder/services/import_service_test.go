package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories/mock"
)

func newImportService(t *testing.T, cards *mock.MockCardRepository, games *mock.MockGameRepository, assetsDir string) (*ImportService, *cache.Cache) {
	t.Helper()
	store, err := cache.New(0)
	if err != nil {
		t.Fatalf("cache.New() error = %v", err)
	}
	return NewImportService(cards, games, store, assetsDir), store
}

func writeAssetFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestImportService_AlreadyImported(t *testing.T) {
	ctrl := gomock.NewController(t)

	cards := mock.NewMockCardRepository(ctrl)
	cards.EXPECT().
		Count(gomock.Any()).
		Return(int64(151), nil)

	service, _ := newImportService(t, cards, mock.NewMockGameRepository(ctrl), t.TempDir())

	err := service.ImportCardsFromAssets(context.Background())
	var known *apperror.KnownError
	if !errors.As(err, &known) {
		t.Fatalf("ImportCardsFromAssets() error = %v, want KnownError", err)
	}
	if known.Code != apperror.CodeCardsAlreadyImported {
		t.Errorf("code = %s, want %s", known.Code, apperror.CodeCardsAlreadyImported)
	}
}

func TestImportService_MissingAssetsDir(t *testing.T) {
	ctrl := gomock.NewController(t)

	cards := mock.NewMockCardRepository(ctrl)
	cards.EXPECT().
		Count(gomock.Any()).
		Return(int64(0), nil)

	service, _ := newImportService(t, cards, mock.NewMockGameRepository(ctrl),
		filepath.Join(t.TempDir(), "does-not-exist"))

	err := service.ImportCardsFromAssets(context.Background())
	var known *apperror.KnownError
	if !errors.As(err, &known) {
		t.Fatalf("ImportCardsFromAssets() error = %v, want KnownError", err)
	}
	if known.Code != apperror.CodeImportFileNotFound {
		t.Errorf("code = %s, want %s", known.Code, apperror.CodeImportFileNotFound)
	}
}

func TestImportService_MissingGameMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)

	assetsDir := t.TempDir()
	gameDir := filepath.Join(assetsDir, "hptcg")
	if err := os.Mkdir(gameDir, 0o755); err != nil {
		t.Fatalf("creating game dir: %v", err)
	}
	// A set file but no game.json alongside it.
	writeAssetFile(t, gameDir, "base-set.json",
		`[{"language":"en","attributes":[{"key":"name","value":"Fluffy"}]}]`)

	cards := mock.NewMockCardRepository(ctrl)
	cards.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	cards.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	service, _ := newImportService(t, cards, mock.NewMockGameRepository(ctrl), assetsDir)

	err := service.ImportCardsFromAssets(context.Background())
	var known *apperror.KnownError
	if !errors.As(err, &known) {
		t.Fatalf("ImportCardsFromAssets() error = %v, want KnownError", err)
	}
	if known.Code != apperror.CodeImportFileNotFound {
		t.Errorf("code = %s, want %s", known.Code, apperror.CodeImportFileNotFound)
	}
}

func TestImportService_ImportAndInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)

	assetsDir := t.TempDir()
	gameDir := filepath.Join(assetsDir, "hptcg")
	if err := os.Mkdir(gameDir, 0o755); err != nil {
		t.Fatalf("creating game dir: %v", err)
	}
	writeAssetFile(t, gameDir, "base-set.json",
		`[{"language":"en","attributes":[{"key":"name","value":"Fluffy"},{"key":"subtitle"}]}]`)
	writeAssetFile(t, gameDir, "game.json",
		`{"name":"Harry Potter TCG","numberOfCards":1}`)

	cards := mock.NewMockCardRepository(ctrl)
	cards.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	cards.EXPECT().
		InsertMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inserted []models.Card) error {
			if len(inserted) != 1 {
				t.Fatalf("inserted %d cards, want 1", len(inserted))
			}
			// Normalize must have run: the empty attribute is gone.
			if len(inserted[0].Attributes) != 1 {
				t.Errorf("card kept %d attributes, want 1", len(inserted[0].Attributes))
			}
			return nil
		})

	games := mock.NewMockGameRepository(ctrl)
	games.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, game *models.Game) error {
			if game.Name != "Harry Potter TCG" {
				t.Errorf("game name = %s", game.Name)
			}
			return nil
		})

	service, store := newImportService(t, cards, games, assetsDir)
	store.Set(cache.KeyCountCards, int64(0), cache.DefaultTTL)
	store.Set(cache.KeyCardsBySet("hp1"), "stale", cache.DefaultTTL)
	store.Set(cache.KeyDecksList, "decks", cache.DefaultTTL)

	if err := service.ImportCardsFromAssets(context.Background()); err != nil {
		t.Fatalf("ImportCardsFromAssets() error = %v", err)
	}

	if _, ok := cache.Get[int64](store, cache.KeyCountCards); ok {
		t.Error("cards_count survived import invalidation")
	}
	if _, ok := cache.Get[string](store, cache.KeyCardsBySet("hp1")); ok {
		t.Error("cards_bySet entry survived import invalidation")
	}
	if _, ok := cache.Get[string](store, cache.KeyDecksList); !ok {
		t.Error("decks_list removed by import invalidation")
	}
}

func TestImportService_DeleteImportedData(t *testing.T) {
	ctrl := gomock.NewController(t)

	cards := mock.NewMockCardRepository(ctrl)
	cards.EXPECT().DeleteAll(gomock.Any()).Return(nil)
	games := mock.NewMockGameRepository(ctrl)
	games.EXPECT().DeleteAll(gomock.Any()).Return(nil)

	service, store := newImportService(t, cards, games, t.TempDir())
	store.Set(cache.KeyCardByID("abc"), "stale", cache.DefaultTTL)

	if err := service.DeleteImportedData(context.Background()); err != nil {
		t.Fatalf("DeleteImportedData() error = %v", err)
	}

	if _, ok := cache.Get[string](store, cache.KeyCardByID("abc")); ok {
		t.Error("card_byId entry survived delete invalidation")
	}
}
