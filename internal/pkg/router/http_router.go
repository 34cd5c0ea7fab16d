package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/halobet/HaloBet/app/controllers"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	// Payment provider webhooks (no auth, signature-verified in the dispatcher)
	app.Post("/webhooks/payments", controllers.HandlePaymentsWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
