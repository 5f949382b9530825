package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/registra-api/registra/internal/registration"
)

// RegisterRegistrationRoutes wires the registration endpoints.
func RegisterRegistrationRoutes(r fiber.Router, h *registration.Handler, rateLimiter fiber.Handler) {
	r.Post("/users", rateLimiter, h.Register)
	r.Get("/users", h.List)
}
