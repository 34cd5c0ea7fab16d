package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
)

// matchRepository implements the MatchRepository interface
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository instance
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Create creates a new match in the database
func (r *matchRepository) Create(match *models.Match) error {
	return r.db.Create(match).Error
}

// GetByID retrieves a match by its ID
func (r *matchRepository) GetByID(id uint) (*models.Match, error) {
	var match models.Match
	err := r.db.Preload("League").First(&match, id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetByExternalID retrieves a match by its provider identifier
func (r *matchRepository) GetByExternalID(externalID string) (*models.Match, error) {
	var match models.Match
	err := r.db.Where("external_id = ?", externalID).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Upcoming retrieves scheduled matches ordered by kickoff time
func (r *matchRepository) Upcoming(limit int) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.Where("status = ? AND kickoff_time > ?", models.MatchStatusScheduled, time.Now()).
		Order("kickoff_time ASC").Limit(limit).Find(&matches).Error
	return matches, err
}

// FinishedSince retrieves matches finished after the given time
func (r *matchRepository) FinishedSince(since time.Time) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.Where("status = ? AND updated_at >= ?", models.MatchStatusFinished, since).
		Order("updated_at DESC").Find(&matches).Error
	return matches, err
}

// Update updates an existing match in the database
func (r *matchRepository) Update(match *models.Match) error {
	return r.db.Save(match).Error
}

// Count returns the total number of matches
func (r *matchRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Match{}).Count(&count).Error
	return count, err
}
