package api

import (
	"github.com/daemroni/leaflove/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListPlants(c *fiber.Ctx) error {
	if c.QueryBool("favourites") {
		plants, err := handler.repos.Plants.ListFavourites()
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to fetch plants")
		}
		return c.JSON(plants)
	}

	plants, err := handler.repos.Plants.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch plants")
	}
	return c.JSON(plants)
}

func (handler *Handler) GetPlant(c *fiber.Ctx) error {
	plant, found, err := handler.repos.Plants.FindByID(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch plant")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "plant not found")
	}
	return c.JSON(plant)
}

func (handler *Handler) CreatePlant(c *fiber.Ctx) error {
	var input services.PlantInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}
	if err := input.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	plant := input.ToPlant()
	if err := handler.repos.Plants.Create(&plant); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create plant")
	}

	return c.Status(fiber.StatusCreated).JSON(plant)
}

func (handler *Handler) UpdatePlant(c *fiber.Ctx) error {
	plant, found, err := handler.repos.Plants.FindByID(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch plant")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "plant not found")
	}

	var patch services.PlantPatch
	if err := decodeStrict(c, &patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}

	updated, err := patch.Apply(plant)
	if err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := handler.repos.Plants.Save(&updated); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update plant")
	}

	return c.JSON(updated)
}

func (handler *Handler) DeletePlant(c *fiber.Ctx) error {
	plantID := c.Params("id")

	_, found, err := handler.repos.Plants.FindByID(plantID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch plant")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "plant not found")
	}

	if err := handler.repos.Plants.DeleteWithReminders(plantID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete plant")
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
