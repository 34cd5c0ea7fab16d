package models

import "time"

const (
	MatchStatusScheduled = "scheduled"
	MatchStatusLive      = "live"
	MatchStatusFinished  = "finished"
	MatchStatusPostponed = "postponed"
	MatchStatusCancelled = "cancelled"
)

// Match is a fixture upserted by the sports-data ingestion job. Scores and
// the finished status are written by the result resolver; bet legs reference
// matches and are settled off these fields.
type Match struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	LeagueID    uint       `gorm:"not null;index" json:"league_id"`
	League      League     `gorm:"foreignKey:LeagueID" json:"-"`
	HomeTeam    string     `gorm:"type:varchar(100);not null;index" json:"home_team"`
	AwayTeam    string     `gorm:"type:varchar(100);not null;index" json:"away_team"`
	KickoffTime time.Time  `gorm:"not null;index" json:"kickoff_time"`
	HomeScore   *int       `gorm:"default:null" json:"home_score,omitempty"`
	AwayScore   *int       `gorm:"default:null" json:"away_score,omitempty"`
	Status      string     `gorm:"type:varchar(16);not null;default:'scheduled';index" json:"status"`
	ExternalID  *string    `gorm:"type:varchar(64);default:null;uniqueIndex" json:"external_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasFinalScore reports whether both scores are set.
func (m *Match) HasFinalScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
