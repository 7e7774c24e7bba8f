package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hptcg/deckbuilder-api/deckbuilder"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
)

func CreateUser(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.CreateUserInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user payload.")
		}

		userID, err := app.UserService.CreateUser(c.UserContext(), &input)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": userID})
	}
}

func SearchUsers(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := app.UserService.SearchUsers(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}

func Login(app *deckbuilder.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.CredentialsInput
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid credentials payload.")
		}

		token, err := app.UserService.LoginWithCredentials(c.UserContext(), &input)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"token": token})
	}
}
