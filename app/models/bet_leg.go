package models

import "time"

const (
	BetOutcomePending = "pending"
	BetOutcomeWon     = "won"
	BetOutcomeLost    = "lost"
	BetOutcomeVoid    = "void"
)

// BetLeg is one wagered selection within a ticket. Outcome transitions
// pending -> {won,lost,void} exactly once and is terminal; StatsProcessed
// transitions false -> true exactly once, guarded by a row lock in the
// stats ledger.
type BetLeg struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TicketID       uint      `gorm:"not null;index" json:"ticket_id"`
	MatchID        uint      `gorm:"not null;index:idx_bet_legs_match_outcome,priority:1" json:"match_id"`
	Match          Match     `gorm:"foreignKey:MatchID" json:"-"`
	Selection      string    `gorm:"type:varchar(100);not null" json:"selection"`
	Odds           float64   `gorm:"type:decimal(10,2);not null" json:"odds" validate:"gt=0"`
	Stake          float64   `gorm:"type:decimal(10,2);not null;default:1" json:"stake" validate:"gte=0"`
	Outcome        string    `gorm:"type:varchar(10);not null;default:'pending';index:idx_bet_legs_match_outcome,priority:2" json:"outcome"`
	StatsProcessed bool      `gorm:"default:false;index" json:"stats_processed"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsFinal reports whether the outcome reached a terminal state.
func (b *BetLeg) IsFinal() bool {
	switch b.Outcome {
	case BetOutcomeWon, BetOutcomeLost, BetOutcomeVoid:
		return true
	default:
		return false
	}
}
