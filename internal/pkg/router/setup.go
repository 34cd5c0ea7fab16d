package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router is one installable route group
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// HttpRouter first: it registers the webhook endpoint and health check.
	// API routes follow.
	setup(app, NewHttpRouter(), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
