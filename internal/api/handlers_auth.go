package api

import (
	"net/mail"
	"strings"

	"github.com/daemroni/leaflove/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func (handler *Handler) Register(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}

	email := normalizeEmail(credentials.Email)
	password := strings.TrimSpace(credentials.Password)
	if email == "" {
		return apiError(c, fiber.StatusUnprocessableEntity, "invalid email")
	}
	if len(password) < minPasswordLength {
		return apiError(c, fiber.StatusUnprocessableEntity, "password too short")
	}

	exists, err := handler.repos.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	user := models.User{Email: email, PasswordHash: string(passwordHash)}
	if err := handler.repos.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}

	email := normalizeEmail(credentials.Email)
	password := strings.TrimSpace(credentials.Password)
	if email == "" || password == "" {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	user, err := handler.repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	return c.JSON(user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"status": "logged out"})
}

func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
