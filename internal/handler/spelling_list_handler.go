package handler

import (
	"github.com/moicalder/moimac.com/internal/dto"
	"github.com/moicalder/moimac.com/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SpellingListHandler struct {
	service service.SpellingListService
}

func NewSpellingListHandler(service service.SpellingListService) *SpellingListHandler {
	return &SpellingListHandler{service: service}
}

// List godoc
// @Summary Custom spelling lists
// @Description Word lists behind TypeMaster's custom-<id> lessons.
// @Tags spelling
// @Produce json
// @Success 200 {object} dto.SpellingListsResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /spelling-lists [get]
func (h *SpellingListHandler) List(c *fiber.Ctx) error {
	lists, err := h.service.ListSpellingLists(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSpellingListsResponse(lists))
}
