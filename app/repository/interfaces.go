package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	ListTipsters(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// MatchRepository defines the interface for match-related database operations
type MatchRepository interface {
	Create(match *models.Match) error
	GetByID(id uint) (*models.Match, error)
	GetByExternalID(externalID string) (*models.Match, error)
	Upcoming(limit int) ([]models.Match, error)
	FinishedSince(since time.Time) ([]models.Match, error)
	Update(match *models.Match) error
	Count() (int64, error)
}

// TicketRepository defines the interface for ticket-related database operations
type TicketRepository interface {
	GetByID(id uint) (*models.Ticket, error)
	GetByUUID(uuid string) (*models.Ticket, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Ticket, error)
	PendingOCR(limit int) ([]models.Ticket, error)
	CountByStatus(status string) (int64, error)
}

// StatsRepository defines the read side of the ledgers. All writes go
// through the stats ledger, never through this interface.
type StatsRepository interface {
	GetGlobalByUserID(userID uint) (*models.UserGlobalStats, error)
	GetSportStats(userID uint) ([]models.UserSportStats, error)
	GetBadges(userID uint) ([]models.UserBadge, error)
	TopByReputation(limit int) ([]models.UserGlobalStats, error)
}

// SubscriptionRepository defines the read side of subscription state.
// Mutations happen only in the subscription state machine.
type SubscriptionRepository interface {
	GetByFollowerAndTipster(followerID, tipsterID uint) (*models.Subscription, error)
	ListByFollower(followerID uint) ([]models.Subscription, error)
	CountActiveForTipster(tipsterID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Match        MatchRepository
	Ticket       TicketRepository
	Stats        StatsRepository
	Subscription SubscriptionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Match:        NewMatchRepository(db),
		Ticket:       NewTicketRepository(db),
		Stats:        NewStatsRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
