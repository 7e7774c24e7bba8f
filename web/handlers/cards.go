// Package handlers wires the service layer to the HTTP surface. Handlers
// only translate between transport and services; all rules live below.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hptcg/deckbuilder-api/deckbuilder"
)

func SearchCards(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := app.CardService.SearchCards(c.UserContext(), c.Query("query"))
		if err != nil {
			return err
		}
		return c.JSON(cards)
	}
}

func CountCards(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := app.CardService.CountCards(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"count": count})
	}
}

func SuggestCardNames(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		suggestions, err := app.CardService.SuggestCardNames(c.UserContext(), c.Query("term"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"suggestions": suggestions})
	}
}

func CardDetail(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		card, err := app.CardService.GetCardByID(c.UserContext(), c.Params("cardId"))
		if err != nil {
			return err
		}
		return c.JSON(card)
	}
}

func CardsBySet(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := app.CardService.GetCardsBySet(c.UserContext(), c.Params("setCode"))
		if err != nil {
			return err
		}
		return c.JSON(cards)
	}
}

func CardBySetAndCode(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		card, err := app.CardService.GetCardBySetAndCode(c.UserContext(), c.Params("setCode"), c.Params("code"))
		if err != nil {
			return err
		}
		return c.JSON(card)
	}
}

func GeneratePack(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pack, err := app.PackGenerator.GenerateRandomPack(c.UserContext(), c.Params("setCode"))
		if err != nil {
			return err
		}
		return c.JSON(pack)
	}
}

func ImportCards(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := app.ImportService.ImportCardsFromAssets(c.UserContext()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

func DeleteImportedCards(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := app.ImportService.DeleteImportedData(c.UserContext()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
