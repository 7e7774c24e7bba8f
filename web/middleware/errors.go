// Package middleware holds the cross-cutting fiber handlers: error mapping,
// request logging and token authentication.
package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
)

// ErrorHandler maps domain failures to their declared status and code.
// Anything unrecognized is logged and answered with a generic 500 so
// internals never leak to clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var known *apperror.KnownError
	if errors.As(err, &known) {
		return c.Status(known.Status).JSON(fiber.Map{
			"code":    known.Code,
			"message": known.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request_failed",
			"message": fiberErr.Message,
		})
	}

	slog.Error("Unhandled request error",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_error",
		"message": "Something went wrong.",
	})
}
