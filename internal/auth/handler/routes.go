package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/registerUser", h.Register)
	app.Post("/login", h.Login)

	// Protected endpoints
	app.Get("/user_info", h.RequireAuth, h.UserInfo)
	app.Post("/change_password", h.RequireAuth, h.ChangePassword)
}
