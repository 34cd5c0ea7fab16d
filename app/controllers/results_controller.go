package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/halobet/HaloBet/internal/pkg/database"
	"github.com/halobet/HaloBet/internal/pkg/results"
	"github.com/halobet/HaloBet/internal/pkg/stats"
)

var (
	resultsResolver    *results.Resolver
	resultsSyncService *results.SyncService
	statsLedger        *stats.Ledger
)

// InitializeResultsController wires the resolver, sync service and ledger
// for the admin result endpoints.
func InitializeResultsController(r *results.Resolver, s *results.SyncService, l *stats.Ledger) {
	resultsResolver = r
	resultsSyncService = s
	statsLedger = l
}

// HandleManualResult lets an operator post one final score. The tuple goes
// through the same resolution and settlement path as the sync job.
func HandleManualResult(c *fiber.Ctx) error {
	if resultsResolver == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "results_unavailable"})
	}

	var upd results.ResultUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := resultsResolver.Resolve(ctx, upd); err != nil {
		if errors.Is(err, results.ErrNoMatchFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_match_found"})
		}
		log.Errorf("[Results] manual result failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "result_apply_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// HandleResultSync triggers a full sync run on demand and reports the
// per-tuple summary.
func HandleResultSync(c *fiber.Ctx) error {
	if resultsSyncService == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "results_unavailable"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := resultsSyncService.Run(ctx)
	if err != nil {
		log.Errorf("[Results] on-demand sync failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "result_source_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

// HandlePendingSettlement lists legs on finished matches that automatic
// settlement could not grade.
func HandlePendingSettlement(c *fiber.Ctx) error {
	legs, err := results.PendingManualSettlement(database.GetDB())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "settlement_queue_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(legs),
		"legs":  legs,
	})
}

// HandleStatsRecompute rebuilds every ledger from the settled bet history.
func HandleStatsRecompute(c *fiber.Ctx) error {
	if statsLedger == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats_unavailable"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := statsLedger.RecomputeAll(ctx); err != nil {
		log.Errorf("[Stats] recompute failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "recompute_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
