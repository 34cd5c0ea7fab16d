package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
	"github.com/halobet/HaloBet/app/repository"
	"github.com/halobet/HaloBet/internal/pkg/metrics/counter"
)

// HandleUserStats returns the ledgers and badges the profile page renders.
// A user who never had a settled bet gets an empty zeroed ledger, not a 404.
func HandleUserStats(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}

	repo := repository.GetGlobalFactory().GetStatsRepository()

	global, err := repo.GetGlobalByUserID(uint(userID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		global = &models.UserGlobalStats{UserID: uint(userID), HaloTier: models.HaloTierNone}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats_lookup_failed"})
	}

	sportStats, err := repo.GetSportStats(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats_lookup_failed"})
	}
	badges, err := repo.GetBadges(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "stats_lookup_failed"})
	}

	if err := counter.AddProfileView(uint(userID)); err != nil {
		log.Warnf("[Stats] profile view counter failed for user %d: %v", userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"global":  global,
		"winrate": global.Winrate(),
		"roi":     global.ROI(),
		"sports":  sportStats,
		"badges":  badges,
	})
}

// HandleLeaderboard returns the reputation leaderboard slice.
func HandleLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}

	repo := repository.GetGlobalFactory().GetStatsRepository()
	top, err := repo.TopByReputation(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "leaderboard_lookup_failed"})
	}
	if top == nil {
		top = []models.UserGlobalStats{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"leaderboard": top})
}
