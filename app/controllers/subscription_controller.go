package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/halobet/HaloBet/app/models"
	"github.com/halobet/HaloBet/app/repository"
)

// HandleUserSubscriptions lists the subscriptions a follower holds.
func HandleUserSubscriptions(c *fiber.Ctx) error {
	followerID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || followerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}

	repo := repository.GetGlobalFactory().GetSubscriptionRepository()
	subs, err := repo.ListByFollower(uint(followerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_lookup_failed"})
	}
	if subs == nil {
		subs = []models.Subscription{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"subscriptions": subs})
}

// HandleTipsterSubscribers returns a tipster's active subscriber count.
func HandleTipsterSubscribers(c *fiber.Ctx) error {
	tipsterID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || tipsterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}

	repo := repository.GetGlobalFactory().GetSubscriptionRepository()
	count, err := repo.CountActiveForTipster(uint(tipsterID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_lookup_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"active_subscribers": count})
}
