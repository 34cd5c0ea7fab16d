package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/halobet/HaloBet/app/controllers"
	"github.com/halobet/HaloBet/app/repository"
	"github.com/halobet/HaloBet/internal/pkg/cache"
	"github.com/halobet/HaloBet/internal/pkg/database"
	"github.com/halobet/HaloBet/internal/pkg/env"
	"github.com/halobet/HaloBet/internal/pkg/jobqueue"
	"github.com/halobet/HaloBet/internal/pkg/metrics/counter"
	"github.com/halobet/HaloBet/internal/pkg/middleware"
	"github.com/halobet/HaloBet/internal/pkg/payments"
	"github.com/halobet/HaloBet/internal/pkg/results"
	"github.com/halobet/HaloBet/internal/pkg/router"
	"github.com/halobet/HaloBet/internal/pkg/stats"
	"github.com/halobet/HaloBet/internal/pkg/subscriptions"
	"github.com/halobet/HaloBet/internal/pkg/tickets"
	"github.com/halobet/HaloBet/internal/pkg/ticketstore"
)

func main() {
	app, stoppers := NewApplication()

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		for _, stop := range stoppers {
			stop()
		}
		if err := counter.FlushAll(); err != nil {
			log.Printf("Final counter flush failed: %v", err)
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	if err != nil {
		log.Fatal(err)
	}
}

// NewApplication wires the service and returns the Fiber app plus the stop
// functions for every background worker, in start order.
func NewApplication() (*fiber.App, []func()) {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()
	repository.InitializeFactory(db)

	// Webhook dispatcher. The service must not come up without the shared
	// secret; an unverified webhook endpoint is worse than none.
	secret := env.GetEnv("PAYMENTS_WEBHOOK_SECRET", "")
	if secret == "" {
		log.Fatal("PAYMENTS_WEBHOOK_SECRET is not configured")
	}
	subscriptionService := subscriptions.NewService()
	dispatcher, err := payments.NewDispatcher(db, secret, subscriptionService.Handlers())
	if err != nil {
		log.Fatalf("Failed to build webhook dispatcher: %v", err)
	}
	controllers.InitializeWebhookController(dispatcher)

	// Settlement pipeline: resolver settles legs, ledger applies the deltas.
	ledger := stats.NewLedger(db)
	resolver := results.NewResolver(db, ledger)

	var stoppers []func()

	var syncService *results.SyncService
	if feed, err := results.NewFeedClient(); err != nil {
		log.Printf("Result sync disabled: %v", err)
	} else {
		syncService = results.NewSyncService(resolver, feed)
		scheduler, err := syncService.StartScheduler(syncInterval())
		if err != nil {
			log.Fatalf("Failed to start result sync scheduler: %v", err)
		}
		stoppers = append(stoppers, shutdownScheduler(scheduler))
	}
	controllers.InitializeResultsController(resolver, syncService, ledger)

	// Ticket ingestion needs both object storage and the OCR collaborator.
	storageConfig, err := ticketstore.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid ticket storage config: %v", err)
	}
	if storageConfig.IsEnabled() {
		store, err := ticketstore.NewClient(storageConfig)
		if err != nil {
			log.Fatalf("Failed to connect ticket storage: %v", err)
		}
		if extractor, err := tickets.NewOCRClient(); err != nil {
			log.Printf("Ticket ingestion disabled: %v", err)
		} else {
			ticketService := tickets.NewService(db, store, extractor)
			queue := jobqueue.NewQueue(extractionWorkers(), ticketService)
			queue.Start()
			stoppers = append(stoppers, queue.Stop)
			controllers.InitializeTicketController(ticketService, queue)
		}
	} else {
		log.Println("Ticket storage disabled, uploads will be rejected")
	}

	// View counters accumulate in redis and get flushed in batches.
	counterScheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create counter scheduler: %v", err)
	}
	_, err = counterScheduler.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			if err := counter.FlushAll(); err != nil {
				log.Printf("Counter flush failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule counter flush: %v", err)
	}
	counterScheduler.Start()
	stoppers = append(stoppers, shutdownScheduler(counterScheduler))

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // slip images
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", middleware.AdminKeyMiddleware(), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app, stoppers
}

func shutdownScheduler(s gocron.Scheduler) func() {
	return func() {
		if err := s.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown failed: %v", err)
		}
	}
}

func syncInterval() time.Duration {
	minutes, err := strconv.Atoi(env.GetEnv("RESULTS_SYNC_INTERVAL_MINUTES", "5"))
	if err != nil || minutes < 1 {
		minutes = 5
	}
	return time.Duration(minutes) * time.Minute
}

func extractionWorkers() int {
	workers, err := strconv.Atoi(env.GetEnv("TICKET_EXTRACTION_WORKERS", "3"))
	if err != nil || workers < 1 {
		workers = 3
	}
	return workers
}
