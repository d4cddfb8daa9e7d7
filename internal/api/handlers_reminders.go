package api

import (
	"github.com/daemroni/leaflove/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListReminders(c *fiber.Ctx) error {
	if plantID := c.Query("plantId"); plantID != "" {
		reminders, err := handler.repos.Reminders.ListByPlant(plantID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to fetch reminders")
		}
		return c.JSON(reminders)
	}

	reminders, err := handler.repos.Reminders.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch reminders")
	}
	return c.JSON(reminders)
}

func (handler *Handler) CreateReminder(c *fiber.Ctx) error {
	var input services.ReminderInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}
	if err := input.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	reminder := input.ToReminder()
	if err := handler.repos.Reminders.Create(&reminder); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create reminder")
	}

	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func (handler *Handler) UpdateReminder(c *fiber.Ctx) error {
	reminder, found, err := handler.repos.Reminders.FindByID(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch reminder")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "reminder not found")
	}

	var patch services.ReminderPatch
	if err := decodeStrict(c, &patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}

	updated, err := patch.Apply(reminder)
	if err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := handler.repos.Reminders.Save(&updated); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update reminder")
	}

	return c.JSON(updated)
}

func (handler *Handler) DeleteReminder(c *fiber.Ctx) error {
	reminderID := c.Params("id")

	_, found, err := handler.repos.Reminders.FindByID(reminderID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch reminder")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "reminder not found")
	}

	if err := handler.repos.Reminders.Delete(reminderID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete reminder")
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
