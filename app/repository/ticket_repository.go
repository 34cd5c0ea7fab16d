package repository

import (
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
)

// ticketRepository implements the TicketRepository interface
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository instance
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// GetByID retrieves a ticket with its legs by ID
func (r *ticketRepository) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Preload("Legs").First(&ticket, id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetByUUID retrieves a ticket with its legs by public UUID
func (r *ticketRepository) GetByUUID(uuid string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Preload("Legs").Where("uuid = ?", uuid).First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetByUserID retrieves a user's tickets with pagination
func (r *ticketRepository) GetByUserID(userID uint, offset, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Preload("Legs").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error
	return tickets, err
}

// PendingOCR retrieves tickets still waiting for extraction, oldest first
func (r *ticketRepository) PendingOCR(limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("status = ?", models.TicketStatusPendingOCR).
		Order("created_at ASC").Limit(limit).Find(&tickets).Error
	return tickets, err
}

// CountByStatus returns the number of tickets in the given status
func (r *ticketRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
