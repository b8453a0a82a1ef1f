package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ancheloroman23/EasyLogin/internal/auth/domain"
	"github.com/ancheloroman23/EasyLogin/internal/auth/dto"
	apperr "github.com/ancheloroman23/EasyLogin/internal/errors"
	"github.com/ancheloroman23/EasyLogin/pkg/constant"
)

// RequireAuth gates a route on a recognized bearer token and stores the
// resolved user in the request locals. Every rejection looks the same to the
// caller regardless of cause.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	user, err := h.userService.Authenticate(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		if !errors.Is(err, apperr.ErrInvalidToken) {
			h.log.WithError(err).Error("auth gate lookup failed")
		}
		return c.JSON(dto.Fail("Unauthorized", "Invalid token"))
	}

	c.Locals(constant.UserContextKey, user)

	return c.Next()
}

// UserFromContext returns the user RequireAuth stored for this request, or nil
// when the request never passed the gate.
func UserFromContext(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(constant.UserContextKey).(*domain.User)
	return user
}
