package groups

import (
	"errors"

	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	groups *GroupService
}

func NewGroupHandler(groups *GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create handles POST /groups.
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req CreateGroupActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	resp, err := h.groups.CreateFromTemplate(&req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, ErrNotGroupTemplate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create group activity",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Join handles POST /groups/:id/join.
func (h *GroupHandler) Join(c *fiber.Ctx) error {
	var req JoinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	outcome, err := h.groups.Join(c.Params("id"), req.ResidentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivityNotFound), errors.Is(err, residents.ErrResidentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, ErrNotGroupActivity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to join group activity",
		})
	}
	return c.JSON(outcome)
}

// Leave handles POST /groups/:id/leave.
func (h *GroupHandler) Leave(c *fiber.Ctx) error {
	var req LeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if err := h.groups.Leave(c.Params("id"), req.ResidentID); err != nil {
		if errors.Is(err, ErrActivityNotFound) || errors.Is(err, residents.ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to leave group activity",
		})
	}
	return c.JSON(fiber.Map{"left": true})
}
