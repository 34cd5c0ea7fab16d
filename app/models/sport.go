package models

import "time"

// Sport is a lookup row ("Football", "Tennis", ...). Per-sport ledgers key
// on it through the match's league.
type Sport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// League groups matches under a sport.
type League struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SportID   uint      `gorm:"not null;index" json:"sport_id"`
	Sport     Sport     `gorm:"foreignKey:SportID" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Country   string    `gorm:"type:varchar(100)" json:"country"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
