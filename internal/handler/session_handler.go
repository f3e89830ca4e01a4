package handler

import (
	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/dto"
	"github.com/moicalder/moimac.com/internal/middleware"
	"github.com/moicalder/moimac.com/internal/service"
	"github.com/moicalder/moimac.com/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles session submissions for every game.
type SessionHandler struct {
	sessionService service.SessionService
	validator      *validation.Validator
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validation.NewValidator(),
	}
}

// Submit godoc
// @Summary Record a completed game session
// @Description Required fields depend on the game: mathmode needs userId, operator and totalQuestions; snake needs userId and score; typemaster needs userId, lessonId and wpm.
// @Tags sessions
// @Accept json
// @Produce json
// @Param game path string true "Game" Enums(mathmode, snake, typemaster)
// @Param request body dto.SubmitSessionRequest true "Session"
// @Success 200 {object} dto.SubmitSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Unknown game or user"
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /{game}/session [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	userID, metrics, verrs := h.validator.ValidateSubmitSession(middleware.GameFromCtx(c), req)
	if len(verrs) > 0 {
		return verrs
	}

	id, err := h.sessionService.RecordSession(c.UserContext(), userID, metrics)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubmitSessionResponse(id))
}
