package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hptcg/deckbuilder-api/deckbuilder"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
)

func SearchDecks(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decks, err := app.DeckService.SearchDecks(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(decks)
	}
}

func DeckDetail(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deck, err := app.DeckService.GetDeckByID(c.UserContext(), c.Params("deckId"))
		if err != nil {
			return err
		}
		return c.JSON(deck)
	}
}

// CreateDeck also records the new deck on its creating user; deck creation
// itself is not rolled back when that bookkeeping fails.
func CreateDeck(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.CreateDeckInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid deck payload.")
		}

		deckID, err := app.DeckCreationService.CreateDeck(c.UserContext(), &input)
		if err != nil {
			return err
		}

		if input.CreatedBy != "" {
			if _, err := app.UserService.AddDeckToUser(c.UserContext(), input.CreatedBy, deckID); err != nil {
				slog.Warn("Failed to record deck on creating user",
					slog.String("deckId", deckID),
					slog.String("userId", input.CreatedBy),
					slog.Any("error", err))
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": deckID})
	}
}
