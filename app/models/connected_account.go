package models

import "time"

// ConnectedAccount mirrors a tipster's provider payout account. The two
// capability flags follow whatever the provider last reported;
// OnboardingCompleted latches to true once both flags have been true and
// never reverts.
type ConnectedAccount struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	ProviderAccountID   string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"provider_account_id"`
	ChargesEnabled      bool      `gorm:"default:false" json:"charges_enabled"`
	PayoutsEnabled      bool      `gorm:"default:false" json:"payouts_enabled"`
	OnboardingCompleted bool      `gorm:"default:false" json:"onboarding_completed"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
