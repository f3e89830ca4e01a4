package handler

import (
	"strings"
	"time"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/dto"
	"github.com/moicalder/moimac.com/internal/middleware"
	"github.com/moicalder/moimac.com/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
	now     func() time.Time
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, now: time.Now}
}

// Leaderboard godoc
// @Summary Game leaderboard
// @Description Top 50 players, recomputed on every request. dimension filters by operator (mathmode) or lesson id (typemaster; "custom" matches every custom list). operator and lesson are accepted as aliases.
// @Tags leaderboard
// @Produce json
// @Param game path string true "Game" Enums(mathmode, snake, typemaster)
// @Param dimension query string false "Operator or lesson id"
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /{game}/leaderboard [get]
func (h *LeaderboardHandler) Leaderboard(c *fiber.Ctx) error {
	game := middleware.GameFromCtx(c)
	filter := middleware.FilterFromCtx(c)

	entries, err := h.service.GetLeaderboard(c.UserContext(), game, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLeaderboardResponse(game, filter, entries, h.now()))
}

// UserSessions godoc
// @Summary A player's session history
// @Description Newest first.
// @Tags leaderboard
// @Produce json
// @Param game path string true "Game" Enums(mathmode, snake, typemaster)
// @Param username query string true "Username (case-insensitive)"
// @Param dimension query string false "Operator or lesson id"
// @Success 200 {object} dto.UserSessionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /{game}/user-sessions [get]
func (h *LeaderboardHandler) UserSessions(c *fiber.Ctx) error {
	game := middleware.GameFromCtx(c)
	filter := middleware.FilterFromCtx(c)
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("username")}
	}

	sessions, err := h.service.GetUserSessions(c.UserContext(), game, username, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserSessionsResponse(game, username, filter, sessions))
}
