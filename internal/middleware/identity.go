package middleware

import (
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDHeader carries the user id verified by the identity provider
	// in front of this service.
	UserIDHeader = "x-user-id"
	UserIDKey    = "userID" // Key for storing UserID in fiber.Ctx locals
)

// Identity copies the trusted user id header into the context. Requests
// without it continue anonymously.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := strings.TrimSpace(c.Get(UserIDHeader)); userID != "" {
			c.Locals(UserIDKey, userID)
		}
		return c.Next()
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserIDFromCtx(c) == "" {
			return domain.NewUnauthorizedError("Unauthorized")
		}
		return c.Next()
	}
}

// UserIDFromCtx returns the caller's id, or "" for anonymous requests.
func UserIDFromCtx(c *fiber.Ctx) string {
	if userID, ok := c.Locals(UserIDKey).(string); ok {
		return userID
	}
	return strings.TrimSpace(c.Get(UserIDHeader))
}
