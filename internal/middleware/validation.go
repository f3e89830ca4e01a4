package middleware

import (
	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	GameKey   = "game"
	FilterKey = "sessionFilter"
)

// ValidationMiddleware parses and validates the path and query values
// shared by the per-game routes.
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{}
}

// ValidateGame resolves the {game} path segment. Unknown games are 404.
func (vm *ValidationMiddleware) ValidateGame() fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := domain.ParseGame(c.Params("game"))
		if err != nil {
			return err
		}
		c.Locals(GameKey, game)
		return c.Next()
	}
}

// ValidateDimension reads the sub-dimension filter from ?dimension=, falling
// back to the game's own parameter name (?operator= or ?lesson=).
// ValidateGame must run first.
func (vm *ValidationMiddleware) ValidateDimension() fiber.Handler {
	return func(c *fiber.Ctx) error {
		game := GameFromCtx(c)
		raw := c.Query("dimension")
		if raw == "" && game.DimensionParam() != "" {
			raw = c.Query(game.DimensionParam())
		}

		filter, err := domain.ParseDimension(game, raw)
		if err != nil {
			return err
		}
		c.Locals(FilterKey, filter)
		return c.Next()
	}
}

func GameFromCtx(c *fiber.Ctx) domain.Game {
	game, _ := c.Locals(GameKey).(domain.Game)
	return game
}

func FilterFromCtx(c *fiber.Ctx) domain.SessionFilter {
	filter, _ := c.Locals(FilterKey).(domain.SessionFilter)
	return filter
}
