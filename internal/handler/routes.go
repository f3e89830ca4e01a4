package handler

import (
	"github.com/moicalder/moimac.com/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	User         *UserHandler
	Session      *SessionHandler
	Leaderboard  *LeaderboardHandler
	SpellingList *SpellingListHandler
	Health       *HealthHandler
}

// RegisterRoutes mounts the API under /api. A nil limiter disables
// submission rate limiting.
func RegisterRoutes(app *fiber.App, h Handlers, limiter middleware.RateLimiter) {
	if h.Health != nil {
		app.Get("/healthz", h.Health.Health)
	}

	api := app.Group("/api", middleware.NoCache(), middleware.Identity())

	api.Post("/user", h.User.GetOrCreate)
	api.Get("/user", middleware.RequireIdentity(), h.User.GetMe)
	api.Patch("/user", middleware.RequireIdentity(), h.User.UpdateMe)
	api.Get("/username/check", h.User.CheckUsername)
	api.Get("/users", h.User.ListUsers)
	api.Get("/users/:username", h.User.GetPublicProfile)
	api.Get("/users/:username/stats", h.User.GetProfileStats)

	api.Get("/spelling-lists", h.SpellingList.List)

	vm := middleware.NewValidationMiddleware()

	submit := []fiber.Handler{vm.ValidateGame()}
	if limiter != nil {
		submit = append(submit, middleware.RateLimit(limiter))
	}
	submit = append(submit, h.Session.Submit)
	api.Post("/:game/session", submit...)

	api.Get("/:game/leaderboard", vm.ValidateGame(), vm.ValidateDimension(), h.Leaderboard.Leaderboard)
	api.Get("/:game/user-sessions", vm.ValidateGame(), vm.ValidateDimension(), h.Leaderboard.UserSessions)
}
