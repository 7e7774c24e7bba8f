// Package web assembles the fiber application: middleware stack plus every
// API route.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hptcg/deckbuilder-api/deckbuilder"
	"github.com/hptcg/deckbuilder-api/web/handlers"
	"github.com/hptcg/deckbuilder-api/web/middleware"
)

func NewServer(app *deckbuilder.App) *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:      "DeckBuilder API",
		ServerHeader: "DeckBuilder",
		ErrorHandler: middleware.ErrorHandler,
	})

	server.Use(recover.New())
	server.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: app.Cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	server.Use(middleware.Logging())

	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": app.Version,
			"commit":  app.Commit,
		})
	})

	setupRoutes(server, app)
	return server
}

func setupRoutes(server *fiber.App, app *deckbuilder.App) {
	api := server.Group("/api/v1")

	// Literal segments register before /:cardId so they are not captured by
	// the parameter route.
	cards := api.Group("/cards")
	cards.Get("/", handlers.SearchCards(app))
	cards.Get("/count", handlers.CountCards(app))
	cards.Get("/suggest", handlers.SuggestCardNames(app))
	cards.Get("/:cardId", handlers.CardDetail(app))
	cards.Post("/import", handlers.ImportCards(app))
	cards.Delete("/import", handlers.DeleteImportedCards(app))

	sets := api.Group("/sets")
	sets.Get("/:setCode/cards", handlers.CardsBySet(app))
	sets.Get("/:setCode/cards/:code", handlers.CardBySetAndCode(app))
	sets.Post("/:setCode/packs/generate",
		middleware.AuthRequired(app.Cfg.JWT.Secret),
		handlers.GeneratePack(app))

	decks := api.Group("/decks")
	decks.Get("/", handlers.SearchDecks(app))
	decks.Post("/", handlers.CreateDeck(app))
	decks.Get("/:deckId", handlers.DeckDetail(app))

	users := api.Group("/users")
	users.Get("/", handlers.SearchUsers(app))
	users.Post("/", handlers.CreateUser(app))
	users.Post("/login", handlers.Login(app))
}
