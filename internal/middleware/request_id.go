package middleware

import (
	"github.com/moicalder/moimac.com/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const RequestIDKey = "requestID"

// RequestID honours an incoming X-Request-ID and otherwise assigns a ULID.
// The id is echoed in the response header.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  util.NewULID,
		ContextKey: RequestIDKey,
	})
}

func RequestIDFromCtx(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
