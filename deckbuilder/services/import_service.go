package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
)

// gameMetadataFile describes the game itself; every other JSON file in a
// game folder is a card set.
const gameMetadataFile = "game.json"

// ImportService seeds the catalog from a directory of JSON assets, one
// folder per game. Imports are all-or-nothing at the request level: a
// populated catalog refuses a second import.
type ImportService struct {
	cards     repositories.CardRepository
	games     repositories.GameRepository
	cache     *cache.Cache
	assetsDir string
}

func NewImportService(cards repositories.CardRepository, games repositories.GameRepository, store *cache.Cache, assetsDir string) *ImportService {
	return &ImportService{
		cards:     cards,
		games:     games,
		cache:     store,
		assetsDir: assetsDir,
	}
}

func (s *ImportService) ImportCardsFromAssets(ctx context.Context) error {
	count, err := s.cards.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.CardsAlreadyImported()
	}

	entries, err := os.ReadDir(s.assetsDir)
	if err != nil {
		return apperror.ImportFileNotFound(s.assetsDir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(s.assetsDir, entry.Name())
		g.Go(func() error {
			return s.importGameFolder(ctx, folder)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.cache.Invalidate("card")
	return nil
}

// importGameFolder loads every set file concurrently, then the game
// metadata. Set files are independent so their order does not matter.
func (s *ImportService) importGameFolder(ctx context.Context, folder string) error {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return apperror.ImportFileNotFound(folder, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == gameMetadataFile || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		g.Go(func() error {
			return s.importSetFile(ctx, path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var game models.Game
	if err := readJSONFile(filepath.Join(folder, gameMetadataFile), &game); err != nil {
		return err
	}
	if err := s.games.Insert(ctx, &game); err != nil {
		return err
	}

	slog.Info("Imported game assets", slog.String("game", game.Name), slog.String("folder", folder))
	return nil
}

func (s *ImportService) importSetFile(ctx context.Context, path string) error {
	var cards []models.Card
	if err := readJSONFile(path, &cards); err != nil {
		return err
	}
	for i := range cards {
		cards[i].Normalize()
	}
	if err := s.cards.InsertMany(ctx, cards); err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	return nil
}

// DeleteImportedData wipes cards and games so the assets can be imported
// again.
func (s *ImportService) DeleteImportedData(ctx context.Context) error {
	if err := s.cards.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.games.DeleteAll(ctx); err != nil {
		return err
	}

	s.cache.Invalidate("card")
	return nil
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return apperror.ImportFileNotFound(path, err)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
