package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pollapi/internal/auth"
)

// AccountIDLocalKey is the key used to store the authenticated account ID in
// Fiber's context locals.
const AccountIDLocalKey = "account_id"

// Auth verifies the Authorization bearer token and stores the account ID in
// context locals. Requests without a valid access token get 401 with the
// standard error envelope.
func Auth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		accountID, err := tokens.VerifyAccess(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(AccountIDLocalKey, accountID)
		return c.Next()
	}
}
