package models

import "time"

const (
	TicketStatusPendingOCR   = "pending_ocr"
	TicketStatusProcessing   = "processing"
	TicketStatusValidated    = "validated"
	TicketStatusReviewNeeded = "review_needed"
	TicketStatusRejected     = "rejected"
)

// Ticket is an uploaded bet slip. The image itself lives in object storage
// under StorageKey; OCR extraction turns it into bet legs.
type Ticket struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	StorageKey string    `gorm:"type:varchar(255);not null" json:"storage_key"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending_ocr';index" json:"status"`
	OCRRawData string    `gorm:"type:longtext" json:"ocr_raw_data,omitempty"`
	// ViewCount is flushed in batches from the cache counters.
	ViewCount uint      `gorm:"default:0" json:"view_count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Legs []BetLeg `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"legs,omitempty"`
}
