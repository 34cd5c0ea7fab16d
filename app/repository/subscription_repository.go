package repository

import (
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetByFollowerAndTipster retrieves the subscription for a (follower, tipster) pair
func (r *subscriptionRepository) GetByFollowerAndTipster(followerID, tipsterID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("follower_id = ? AND tipster_id = ?", followerID, tipsterID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByFollower retrieves all subscriptions a follower holds
func (r *subscriptionRepository) ListByFollower(followerID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("follower_id = ?", followerID).Order("id ASC").Find(&subs).Error
	return subs, err
}

// CountActiveForTipster returns the number of active subscribers of a tipster
func (r *subscriptionRepository) CountActiveForTipster(tipsterID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("tipster_id = ? AND status = ?", tipsterID, models.SubscriptionStatusActive).
		Count(&count).Error
	return count, err
}
