package middleware

import "github.com/gofiber/fiber/v2"

// NoCache marks every GET response as non-storable. Leaderboards must be
// current at request time.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, proxy-revalidate")
			c.Set(fiber.HeaderPragma, "no-cache")
			c.Set(fiber.HeaderExpires, "0")
		}
		return c.Next()
	}
}
