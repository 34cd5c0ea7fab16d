package controllers

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
	"github.com/halobet/HaloBet/app/repository"
	"github.com/halobet/HaloBet/internal/pkg/entitlements"
	"github.com/halobet/HaloBet/internal/pkg/jobqueue"
	"github.com/halobet/HaloBet/internal/pkg/metrics/counter"
	"github.com/halobet/HaloBet/internal/pkg/tickets"
)

var (
	ticketService *tickets.Service
	ticketQueue   *jobqueue.Queue
)

// InitializeTicketController wires the ticket ingestion service. The queue
// is optional; without it extraction runs in a request-scoped goroutine.
func InitializeTicketController(svc *tickets.Service, queue *jobqueue.Queue) {
	ticketService = svc
	ticketQueue = queue
}

// HandleTicketUpload accepts a multipart slip image, stores it and kicks off
// extraction in the background. Responds with the ticket UUID the client
// polls for status.
func HandleTicketUpload(c *fiber.Ctx) error {
	if ticketService == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "tickets_unavailable"})
	}

	userID, err := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_image"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable_image"})
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable_image"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ticket, err := ticketService.CreateTicket(ctx, uint(userID), fileHeader.Filename, image)
	if err != nil {
		log.Errorf("[Tickets] upload failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ticket_create_failed"})
	}

	// Extraction talks to the OCR provider; run it off the request path.
	if ticketQueue != nil {
		_, err = ticketQueue.EnqueueTicketExtraction(jobqueue.TicketExtractionJobPayload{
			TicketID:   ticket.ID,
			TicketUUID: ticket.UUID,
		})
		if err != nil {
			log.Errorf("[Tickets] enqueue failed for ticket %d, falling back inline: %v", ticket.ID, err)
		}
	}
	if ticketQueue == nil || err != nil {
		go func(ticketID uint) {
			bgCtx, bgCancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer bgCancel()
			if err := ticketService.ProcessTicket(bgCtx, ticketID); err != nil {
				log.Errorf("[Tickets] processing failed for ticket %d: %v", ticketID, err)
			}
		}(ticket.ID)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"uuid":   ticket.UUID,
		"status": ticket.Status,
	})
}

// HandleTicketStatus returns a ticket and its legs by public UUID. Tipster
// tickets are redacted to a preview unless the viewer holds an entitling
// subscription; the auth gateway passes the viewer id through.
func HandleTicketStatus(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing_uuid"})
	}
	viewerID := uint(c.QueryInt("viewer_id", 0))

	repos := repository.GetGlobalFactory()
	ticket, err := repos.GetTicketRepository().GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "ticket_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ticket_lookup_failed"})
	}

	owner, err := repos.GetUserRepository().GetByID(ticket.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ticket_lookup_failed"})
	}

	var sub *models.Subscription
	if viewerID != 0 && owner != nil && owner.IsTipster {
		sub, err = repos.GetSubscriptionRepository().GetByFollowerAndTipster(viewerID, owner.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ticket_lookup_failed"})
		}
	}

	access := entitlements.TicketAccess(viewerID, ticket, owner, sub)
	if access == entitlements.AccessPreview {
		entitlements.RedactTicket(ticket)
	}

	if err := counter.AddTicketView(ticket.ID); err != nil {
		log.Warnf("[Tickets] view counter failed for ticket %d: %v", ticket.ID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ticket": ticket,
		"access": access,
	})
}

// HandleUserTickets lists a user's tickets, newest first.
func HandleUserTickets(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_user_id"})
	}
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	repo := repository.GetGlobalFactory().GetTicketRepository()
	list, err := repo.GetByUserID(uint(userID), offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ticket_lookup_failed"})
	}
	if list == nil {
		list = []models.Ticket{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tickets": list})
}
