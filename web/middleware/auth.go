package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hptcg/deckbuilder-api/deckbuilder/auth"
)

// ClaimsKey is where AuthRequired stores the verified token claims.
const ClaimsKey = "claims"

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(tokenSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing bearer token.")
		}

		claims, err := auth.VerifyAuthToken(token, tokenSecret)
		if err != nil {
			slog.Debug("Rejected bearer token", slog.Any("error", err))
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}
