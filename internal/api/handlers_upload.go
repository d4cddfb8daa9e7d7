package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/daemroni/leaflove/internal/security"
	"github.com/gofiber/fiber/v2"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadImage stores an image and answers with the URL a plant record
// can be patched with. Size and type are checked before any byte is
// written.
func (handler *Handler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "image file is required")
	}

	if file.Size > MaxUploadBytes {
		return apiError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the 5 MB limit")
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[extension] {
		return apiError(c, fiber.StatusUnprocessableEntity, "unsupported image type")
	}

	name, err := security.RandomString(24, security.FilenameAlphabet)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "upload failed")
	}
	fileName := name + extension

	if err := os.MkdirAll(handler.uploadDir, 0o755); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "upload failed")
	}
	if err := c.SaveFile(file, filepath.Join(handler.uploadDir, fileName)); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "upload failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": "/uploads/" + fileName})
}
