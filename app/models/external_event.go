package models

import "time"

// ExternalEvent is the append-only record of provider webhook deliveries.
// The unique index on ProviderEventID is the idempotency gate: a second
// insert attempt for the same provider event id fails and the dispatcher
// treats the delivery as already processed. Rows are never updated or
// deleted (audit trail).
type ExternalEvent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProviderEventID string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_external_events_provider_event_id" json:"provider_event_id"`
	EventType       string    `gorm:"type:varchar(100);not null;index" json:"event_type"`
	Payload         string    `gorm:"type:longtext;not null" json:"payload"`
	ReceivedAt      time.Time `gorm:"autoCreateTime;index" json:"received_at"`
}
