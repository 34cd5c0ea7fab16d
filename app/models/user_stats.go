package models

import "time"

const (
	HaloTierGold   = "gold"
	HaloTierSilver = "silver"
	HaloTierBronze = "bronze"
	HaloTierNone   = "none"
)

// UserGlobalStats is the lifetime ledger for one user. Every field is
// mutated only inside a row-locked transaction by the stats ledger; the
// invariant TotalBets == Wins + Losses + Voids holds after every commit.
// ROI follows the unit-stake model: each bet risks exactly one unit.
type UserGlobalStats struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalBets       uint      `gorm:"not null;default:0" json:"total_bets"`
	Wins            uint      `gorm:"not null;default:0" json:"wins"`
	Losses          uint      `gorm:"not null;default:0" json:"losses"`
	Voids           uint      `gorm:"not null;default:0" json:"voids"`
	CurrentStreak   uint      `gorm:"not null;default:0" json:"current_streak"`
	MaxStreak       uint      `gorm:"not null;default:0" json:"max_streak"`
	UnitsReturned   float64   `gorm:"type:decimal(19,4);not null;default:0" json:"units_returned"`
	ReputationScore int       `gorm:"not null;default:0" json:"reputation_score"`
	HaloTier        string    `gorm:"type:varchar(20);not null;default:'none'" json:"halo_tier"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Winrate returns the win percentage over decided bets (voids excluded).
func (s *UserGlobalStats) Winrate() float64 {
	return winrate(s.Wins, s.TotalBets, s.Voids)
}

// ROI returns the percentage return on the units invested.
func (s *UserGlobalStats) ROI() float64 {
	return roi(s.UnitsReturned, s.TotalBets)
}

// UserSportStats is the per-(user, sport) ledger. Same delta rules as the
// global ledger with an independent streak counter.
type UserSportStats struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:ux_user_sport_stats_user_sport,unique,priority:1" json:"user_id"`
	SportID       uint      `gorm:"not null;index:ux_user_sport_stats_user_sport,unique,priority:2" json:"sport_id"`
	TotalBets     uint      `gorm:"not null;default:0" json:"total_bets"`
	Wins          uint      `gorm:"not null;default:0" json:"wins"`
	Losses        uint      `gorm:"not null;default:0" json:"losses"`
	Voids         uint      `gorm:"not null;default:0" json:"voids"`
	CurrentStreak uint      `gorm:"not null;default:0" json:"current_streak"`
	MaxStreak     uint      `gorm:"not null;default:0" json:"max_streak"`
	UnitsReturned float64   `gorm:"type:decimal(19,4);not null;default:0" json:"units_returned"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Winrate returns the win percentage over decided bets (voids excluded).
func (s *UserSportStats) Winrate() float64 {
	return winrate(s.Wins, s.TotalBets, s.Voids)
}

// ROI returns the percentage return on the units invested.
func (s *UserSportStats) ROI() float64 {
	return roi(s.UnitsReturned, s.TotalBets)
}

func winrate(wins, totalBets, voids uint) float64 {
	decided := int(totalBets) - int(voids)
	if decided <= 0 {
		return 0
	}
	return float64(wins) / float64(decided) * 100
}

func roi(unitsReturned float64, totalBets uint) float64 {
	if totalBets == 0 {
		return 0
	}
	invested := float64(totalBets)
	return (unitsReturned - invested) / invested * 100
}
