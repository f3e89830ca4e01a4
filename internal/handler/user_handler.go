package handler

import (
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/dto"
	"github.com/moicalder/moimac.com/internal/middleware"
	"github.com/moicalder/moimac.com/internal/service"
	"github.com/moicalder/moimac.com/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService  service.UserService
	statsService service.ProfileStatsService
	validator    *validation.Validator
}

func NewUserHandler(userService service.UserService, statsService service.ProfileStatsService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		statsService: statsService,
		validator:    validation.NewValidator(),
	}
}

// GetOrCreate godoc
// @Summary Get or create the signed-in user
// @Description Called after sign-in. Creates the user on first contact, defaulting the username to the email's local part (disallowed characters become underscores) when it is valid and free.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.GetOrCreateUserRequest true "Identity"
// @Success 200 {object} dto.ProfileEnvelope
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /user [post]
func (h *UserHandler) GetOrCreate(c *fiber.Ctx) error {
	var req dto.GetOrCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	var verrs domain.ValidationErrors
	if strings.TrimSpace(req.UserID) == "" {
		verrs = append(verrs, domain.NewMissingFieldError("userId"))
	}
	if strings.TrimSpace(req.Email) == "" {
		verrs = append(verrs, domain.NewMissingFieldError("email"))
	}
	if len(verrs) > 0 {
		return verrs
	}

	user, err := h.userService.GetOrCreateUser(c.UserContext(), req.UserID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileEnvelope(user))
}

// GetMe godoc
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security UserIDHeader
// @Success 200 {object} dto.ProfileEnvelope
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /user [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), middleware.UserIDFromCtx(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileEnvelope(user))
}

// UpdateMe godoc
// @Summary Update my profile
// @Description Only the supplied fields change.
// @Tags users
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileEnvelope
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Username taken"
// @Router /user [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if verrs := h.validator.ValidateProfileUpdate(req); len(verrs) > 0 {
		return verrs
	}

	user, err := h.userService.UpdateUserProfile(c.UserContext(), middleware.UserIDFromCtx(c), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileEnvelope(user))
}

// CheckUsername godoc
// @Summary Check username availability
// @Description Case-insensitive. Pass userId to ignore the caller's own username.
// @Tags users
// @Produce json
// @Param username query string true "Desired username"
// @Param userId query string false "Current user id"
// @Success 200 {object} dto.UsernameCheckResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /username/check [get]
func (h *UserHandler) CheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if verrs := h.validator.ValidateUsernameCheck(username); len(verrs) > 0 {
		return verrs
	}

	available, err := h.userService.IsUsernameAvailable(c.UserContext(), username, c.Query("userId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UsernameCheckResponse{Available: available, Username: username})
}

// ListUsers godoc
// @Summary User directory
// @Description Users with a username, highest total score first.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	profiles, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(profiles))
}

// GetPublicProfile godoc
// @Summary Public profile
// @Tags users
// @Produce json
// @Param username path string true "Username (case-insensitive)"
// @Success 200 {object} dto.PublicUserEnvelope
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetPublicProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetPublicProfile(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.PublicUserEnvelope{User: dto.NewPublicUserResponse(*profile)})
}

// GetProfileStats godoc
// @Summary Per-game stats for a user
// @Tags users
// @Produce json
// @Param username path string true "Username (case-insensitive)"
// @Success 200 {object} dto.ProfileStatsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /users/{username}/stats [get]
func (h *UserHandler) GetProfileStats(c *fiber.Ctx) error {
	stats, err := h.statsService.GetProfileStats(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProfileStatsResponse(stats))
}
