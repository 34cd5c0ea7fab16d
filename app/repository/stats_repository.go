package repository

import (
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
)

// statsRepository implements the StatsRepository interface
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository instance
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// GetGlobalByUserID retrieves the lifetime ledger for a user
func (r *statsRepository) GetGlobalByUserID(userID uint) (*models.UserGlobalStats, error) {
	var stats models.UserGlobalStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetSportStats retrieves all per-sport ledgers for a user
func (r *statsRepository) GetSportStats(userID uint) ([]models.UserSportStats, error) {
	var stats []models.UserSportStats
	err := r.db.Where("user_id = ?", userID).Order("sport_id ASC").Find(&stats).Error
	return stats, err
}

// GetBadges retrieves all badges awarded to a user
func (r *statsRepository) GetBadges(userID uint) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := r.db.Where("user_id = ?", userID).Order("awarded_at ASC").Find(&badges).Error
	return badges, err
}

// TopByReputation retrieves the leaderboard slice ordered by reputation
func (r *statsRepository) TopByReputation(limit int) ([]models.UserGlobalStats, error) {
	var stats []models.UserGlobalStats
	err := r.db.Where("total_bets > 0").
		Order("reputation_score DESC, units_returned DESC").
		Limit(limit).Find(&stats).Error
	return stats, err
}
