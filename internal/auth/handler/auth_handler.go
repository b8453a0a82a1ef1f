package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ancheloroman23/EasyLogin/internal/auth/dto"
	"github.com/ancheloroman23/EasyLogin/internal/auth/service"
	apperr "github.com/ancheloroman23/EasyLogin/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
	log         *logrus.Logger
}

func NewAuthHandler(userService *service.UserService, log *logrus.Logger) *AuthHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AuthHandler{userService: userService, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error", "invalid input"))
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUsernameOrEmailInUse):
			return c.JSON(dto.Fail("Registration failed", "Username or email already in use"))
		case errors.Is(err, apperr.ErrAllFieldsRequired):
			return c.JSON(dto.Fail("Error", "All fields are required"))
		default:
			h.log.WithError(err).Error("register failed")
			return c.JSON(dto.Fail("Error", "internal server error"))
		}
	}

	out := dto.NewUserOutput(user)

	return c.JSON(dto.OK("Registration successful", &out))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error", "invalid input"))
	}

	user, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			return c.JSON(dto.Fail("Login failed", "Username or password incorrect"))
		}
		h.log.WithError(err).WithField("username", input.Username).Error("login failed")
		return c.JSON(dto.Fail("Error", "internal server error"))
	}

	out := dto.NewUserOutput(user)

	return c.JSON(dto.OK("Login successful", &out))
}

func (h *AuthHandler) UserInfo(c *fiber.Ctx) error {
	user := UserFromContext(c)
	if user == nil {
		return c.JSON(dto.Fail("Unauthorized", "Invalid token"))
	}

	out := dto.NewUserOutput(user)

	return c.JSON(dto.OK("User login", &out))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user := UserFromContext(c)
	if user == nil {
		return c.JSON(dto.Fail("Unauthorized", "Invalid token"))
	}

	var input dto.PasswordChangeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Error", "invalid input"))
	}

	if err := h.userService.ChangePassword(c.Context(), user, input); err != nil {
		switch {
		case errors.Is(err, apperr.ErrIncorrectOldPassword):
			return c.JSON(dto.Fail("Error", "The current password is incorrect"))
		case errors.Is(err, apperr.ErrPasswordMismatch):
			return c.JSON(dto.Fail("Error", "Passwords don't match"))
		default:
			h.log.WithError(err).Error("password change failed")
			return c.JSON(dto.Fail("Error", "internal server error"))
		}
	}

	return c.JSON(dto.OK[any]("Password changed successfully", nil))
}
