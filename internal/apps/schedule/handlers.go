package schedule

import (
	"errors"
	"log/slog"

	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/middleware"
	"github.com/dagcentrum/backend/internal/timeslot"
	"github.com/dagcentrum/backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	schedule *ScheduleService
}

func NewScheduleHandler(schedule *ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// Generate handles POST /schedule/:residentId/generate.
func (h *ScheduleHandler) Generate(c *fiber.Ctx) error {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid resident id",
		})
	}

	var req GenerateRequest
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

	out, err := h.schedule.Generate(residentID, req.Date)
	if err != nil {
		if errors.Is(err, residents.ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate schedule",
		})
	}
	return c.JSON(out)
}

// Day handles GET /schedule/:residentId/:date.
func (h *ScheduleHandler) Day(c *fiber.Ctx) error {
	residentID, date, err := scheduleParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	out, err := h.schedule.ListDay(residentID, date)
	if err != nil {
		if errors.Is(err, residents.ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch schedule",
		})
	}
	return c.JSON(out)
}

// EligibleGroups handles GET /schedule/:residentId/:date/groups.
func (h *ScheduleHandler) EligibleGroups(c *fiber.Ctx) error {
	residentID, date, err := scheduleParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	out, err := h.schedule.EligibleGroups(residentID, date)
	if err != nil {
		if errors.Is(err, residents.ErrResidentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch eligible groups",
		})
	}
	return c.JSON(out)
}

// Complete handles PATCH /activities/:id/complete.
func (h *ScheduleHandler) Complete(c *fiber.Ctx) error {
	activityID := c.Params("id")

	var req CompleteRequest
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

	if err := h.schedule.SetCompleted(activityID, *req.Completed); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update activity",
		})
	}

	if staffID, err := middleware.GetStaffID(c); err == nil {
		slog.Info("activity completion updated",
			"staff_id", staffID.String(), "activity_id", activityID, "completed", *req.Completed)
	}
	return c.JSON(fiber.Map{"id": activityID, "completed": *req.Completed})
}

func scheduleParams(c *fiber.Ctx) (uuid.UUID, string, error) {
	residentID, err := uuid.Parse(c.Params("residentId"))
	if err != nil {
		return uuid.Nil, "", errors.New("Invalid resident id")
	}
	date := c.Params("date")
	if !timeslot.ValidDate(date) {
		return uuid.Nil, "", errors.New("Invalid date, expected YYYY-MM-DD")
	}
	return residentID, date, nil
}
