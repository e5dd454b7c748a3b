package residents

import (
	"errors"

	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ResidentHandler struct {
	residents *ResidentService
}

func NewResidentHandler(residents *ResidentService) *ResidentHandler {
	return &ResidentHandler{residents: residents}
}

// List handles GET /residents.
func (h *ResidentHandler) List(c *fiber.Ctx) error {
	out, err := h.residents.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch residents",
		})
	}
	return c.JSON(out)
}

// Get handles GET /residents/:id.
func (h *ResidentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid resident id",
		})
	}

	resp, err := h.residents.Get(id)
	if err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch resident",
		})
	}
	return c.JSON(resp)
}

// Create handles POST /residents.
func (h *ResidentHandler) Create(c *fiber.Ctx) error {
	var req CreateResidentRequest
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

	resp, err := h.residents.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create resident",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update handles PUT /residents/:id.
func (h *ResidentHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid resident id",
		})
	}

	var req UpdateResidentRequest
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

	resp, err := h.residents.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update resident",
		})
	}
	return c.JSON(resp)
}

// UpdateSupport handles PUT /residents/:id/support.
func (h *ResidentHandler) UpdateSupport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid resident id",
		})
	}

	var flags models.SupportFlags
	if err := c.BodyParser(&flags); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.residents.UpdateSupport(id, flags); err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update support profile",
		})
	}
	return c.JSON(fiber.Map{"id": id, "support": flags})
}

// UpdatePreferences handles PUT /residents/:id/preferences.
func (h *ResidentHandler) UpdatePreferences(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid resident id",
		})
	}

	var payload PreferencesPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.residents.UpdatePreferences(id, &payload); err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update preferences",
		})
	}
	return c.JSON(fiber.Map{"id": id, "preferences": payload})
}

// Delete handles DELETE /residents/:id.
func (h *ResidentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid resident id",
		})
	}

	if err := h.residents.Delete(id); err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete resident",
		})
	}
	return c.JSON(fiber.Map{"deleted": id})
}
