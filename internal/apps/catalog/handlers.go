package catalog

import (
	"errors"

	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	templates *TemplateService
}

func NewTemplateHandler(templates *TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List handles GET /templates with an optional ?category= filter.
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")

	var (
		out []TemplateResponse
		err error
	)
	if category != "" {
		if !contains(models.ValidCategories, category) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid category",
			})
		}
		out, err = h.templates.ListByCategory(category)
	} else {
		out, err = h.templates.ListAll()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch templates",
		})
	}
	return c.JSON(out)
}

// Get handles GET /templates/:id.
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid template id",
		})
	}

	resp, err := h.templates.Get(id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch template",
		})
	}
	return c.JSON(resp)
}

// Create handles POST /templates.
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req CreateTemplateRequest
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

	resp, err := h.templates.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create template",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update handles PUT /templates/:id.
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid template id",
		})
	}

	var req UpdateTemplateRequest
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

	resp, err := h.templates.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update template",
		})
	}
	return c.JSON(resp)
}

// Delete handles DELETE /templates/:id.
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid template id",
		})
	}

	if err := h.templates.Delete(id); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete template",
		})
	}
	return c.JSON(fiber.Map{"deleted": id})
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
