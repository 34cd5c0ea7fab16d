package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	apiv1 "github.com/halobet/HaloBet/internal/api/v1"

	"github.com/halobet/HaloBet/app/controllers"
	"github.com/halobet/HaloBet/internal/pkg/env"
	"github.com/halobet/HaloBet/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		// Shared storage so the limit holds across instances
		Storage: newLimiterStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)

	// Operational endpoints behind the shared admin key
	admin := v1.Group("/admin", middleware.AdminKeyMiddleware())
	admin.Post("/results", controllers.HandleManualResult)
	admin.Post("/results/sync", controllers.HandleResultSync)
	admin.Get("/settlement/pending", controllers.HandlePendingSettlement)
	admin.Post("/stats/recompute", controllers.HandleStatsRecompute)
}

func newLimiterStorage() fiber.Storage {
	port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
	if err != nil {
		port = 6379
	}
	return redisstorage.New(redisstorage.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Database: 1, // keep limiter counters out of the app cache db
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
