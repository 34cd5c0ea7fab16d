package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/halobet/HaloBet/app/controllers"
)

// Pong is the ping endpoint response body
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the public v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserStats returns the ledgers and badges for a user profile
func (s *APIServer) GetUserStats(c *fiber.Ctx) error {
	return controllers.HandleUserStats(c)
}

// GetUserTickets lists a user's tickets
func (s *APIServer) GetUserTickets(c *fiber.Ctx) error {
	return controllers.HandleUserTickets(c)
}

// GetUserSubscriptions lists the subscriptions a follower holds
func (s *APIServer) GetUserSubscriptions(c *fiber.Ctx) error {
	return controllers.HandleUserSubscriptions(c)
}

// GetTipsterSubscribers returns a tipster's active subscriber count
func (s *APIServer) GetTipsterSubscribers(c *fiber.Ctx) error {
	return controllers.HandleTipsterSubscribers(c)
}

// GetLeaderboard returns the reputation leaderboard
func (s *APIServer) GetLeaderboard(c *fiber.Ctx) error {
	return controllers.HandleLeaderboard(c)
}

// PostTicket accepts a slip image upload
func (s *APIServer) PostTicket(c *fiber.Ctx) error {
	return controllers.HandleTicketUpload(c)
}

// GetTicket returns a ticket with entitlement-aware redaction
func (s *APIServer) GetTicket(c *fiber.Ctx) error {
	return controllers.HandleTicketStatus(c)
}

// RegisterHandlers attaches the v1 routes to the given router group
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	router.Get("/users/:id/stats", s.GetUserStats)
	router.Get("/users/:id/tickets", s.GetUserTickets)
	router.Get("/users/:id/subscriptions", s.GetUserSubscriptions)
	router.Get("/tipsters/:id/subscribers", s.GetTipsterSubscribers)
	router.Get("/leaderboard", s.GetLeaderboard)

	router.Post("/tickets", s.PostTicket)
	router.Get("/tickets/:uuid", s.GetTicket)
}
