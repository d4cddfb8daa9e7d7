package api

import (
	"bytes"
	"encoding/json"

	"github.com/daemroni/leaflove/internal/models"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// decodeStrict parses a JSON request body and rejects unknown fields,
// so payloads carry exactly the declared shape and nothing leaks
// through to the store.
func decodeStrict(c *fiber.Ctx, destination any) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	return decoder.Decode(destination)
}
