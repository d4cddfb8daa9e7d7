package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetWeather(c *fiber.Ctx) error {
	if handler.weather == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "weather data unavailable")
	}
	current, err := handler.weather.Current()
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "weather data unavailable")
	}
	return c.JSON(current)
}

func (handler *Handler) GetCareTip(c *fiber.Ctx) error {
	if handler.tips == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "care tips unavailable")
	}
	return c.JSON(fiber.Map{"tip": handler.tips.Current()})
}
