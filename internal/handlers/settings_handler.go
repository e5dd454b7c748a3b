package handlers

import (
	"errors"

	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/services"
	"github.com/dagcentrum/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type setSettingRequest struct {
	Value string `json:"value" validate:"required"`
	Type  string `json:"type" validate:"omitempty,oneof=string bool int json"`
}

// List handles GET /admin/settings.
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.settings.All()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}
	return c.JSON(settings)
}

// Set handles PUT /admin/settings/:key.
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	key := c.Params("key")

	var req setSettingRequest
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
	if req.Type == "" {
		req.Type = "string"
	}

	setting, err := h.settings.Set(key, req.Value, req.Type)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.JSON(setting)
}

// Delete handles DELETE /admin/settings/:key.
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := h.settings.Delete(key); err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete setting",
		})
	}
	return c.JSON(fiber.Map{"deleted": key})
}
