package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/halobet/HaloBet/internal/pkg/payments"
)

var webhookDispatcher *payments.Dispatcher

// InitializeWebhookController wires the payments dispatcher. Must be called
// before the webhook route is served; the router refuses to install the
// route otherwise.
func InitializeWebhookController(d *payments.Dispatcher) {
	webhookDispatcher = d
}

// HandlePaymentsWebhook receives provider deliveries. Signature and payload
// problems are 400s; duplicates, unknown event types and discarded business
// rejections are all 200s so the provider stops retrying. Only unexpected
// transaction failures surface as 500 and get redelivered.
func HandlePaymentsWebhook(c *fiber.Ctx) error {
	if webhookDispatcher == nil {
		log.Error("[Webhook] dispatcher not initialized")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_unavailable"})
	}

	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Webhook-Signature"))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := webhookDispatcher.Dispatch(ctx, rawBody, signature)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
		}
		if errors.Is(err, payments.ErrInvalidPayload) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		log.Errorf("[Webhook] event %s failed: %v", res.EventID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":        true,
		"duplicate": res.Duplicate,
		"ignored":   res.Ignored,
	})
}
