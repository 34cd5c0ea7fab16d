package models

import "time"

// UserBadge is an awarded badge instance. The unique (user, slug) index
// makes re-awarding a no-op.
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:ux_user_badges_user_slug,unique,priority:1" json:"user_id"`
	Slug      string    `gorm:"type:varchar(100);not null;index:ux_user_badges_user_slug,unique,priority:2" json:"slug"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}
