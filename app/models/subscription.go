package models

import "time"

const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusIncomplete = "incomplete"
)

// Subscription links a paying follower to a tipster. It is created only by
// a successful checkout completion and afterwards mutated only by provider
// events; cancellation is a status transition, never a row delete.
type Subscription struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	FollowerID             uint       `gorm:"not null;index:ux_subscriptions_follower_tipster,unique,priority:1" json:"follower_id"`
	TipsterID              uint       `gorm:"not null;index:ux_subscriptions_follower_tipster,unique,priority:2" json:"tipster_id"`
	ProviderSubscriptionID string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"provider_subscription_id"`
	ProviderCustomerID     string     `gorm:"type:varchar(191)" json:"provider_customer_id"`
	Status                 string     `gorm:"type:varchar(32);not null;default:'incomplete';index" json:"status"`
	CurrentPeriodEnd       *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsEntitling reports whether the subscription currently grants access to
// the tipster's paid content.
func (s *Subscription) IsEntitling() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusPastDue
}
