package deckbuilder

import (
	"time"

	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
	"github.com/hptcg/deckbuilder-api/deckbuilder/services"
)

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// App holds the wired service graph. Setup builds it from an established
// database connection; everything downstream shares the same cache.
type App struct {
	Cfg     Config
	Version string
	Commit  string
	DB      *database.DB
	Cache   *cache.Cache

	CardService         *services.CardService
	PackGenerator       *services.PackGenerator
	DeckService         *services.DeckService
	DeckCreationService *services.DeckCreationService
	UserService         *services.UserService
	ImportService       *services.ImportService
}

func (a *App) Setup(db *database.DB) error {
	store, err := cache.New(a.Cfg.Cache.Capacity)
	if err != nil {
		return err
	}

	cardRepository := repositories.NewCardRepository(db)
	deckRepository := repositories.NewDeckRepository(db)
	userRepository := repositories.NewUserRepository(db)
	gameRepository := repositories.NewGameRepository(db)

	tokenTTL := time.Duration(a.Cfg.JWT.ExpiresInMinutes) * time.Minute

	a.DB = db
	a.Cache = store
	a.CardService = services.NewCardService(cardRepository, store)
	a.PackGenerator = services.NewPackGenerator(cardRepository)
	a.DeckService = services.NewDeckService(deckRepository, store)
	a.DeckCreationService = services.NewDeckCreationService(deckRepository, a.CardService, store)
	a.UserService = services.NewUserService(userRepository, store, a.Cfg.JWT.Secret, tokenTTL)
	a.ImportService = services.NewImportService(cardRepository, gameRepository, store, a.Cfg.Import.AssetsDir)
	return nil
}
