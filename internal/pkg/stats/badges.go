package stats

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halobet/HaloBet/app/models"
)

// Badge slugs. The set is closed: adding a badge means adding a predicate to
// the badges list below, not registering anything at runtime.
const (
	BadgeExpert      = "expert"
	BadgeFireStreak  = "fire_streak"
	BadgeAnticipator = "anticipator"
)

// Predicate thresholds.
const (
	expertMinBets       = 15
	expertMinWinrate    = 65.0
	fireStreakLength    = 7
	anticipatorLeadTime = 24 * time.Hour
	anticipatorMinCount = 10
)

// badgeContext is everything a predicate may look at: the triggering leg and
// its match, plus the freshly updated ledgers for both scopes.
type badgeContext struct {
	leg    *models.BetLeg
	match  *models.Match
	global *models.UserGlobalStats
	sport  *models.UserSportStats
}

type badgePredicate func(tx *gorm.DB, bc badgeContext) (bool, error)

// badges is the ordered, closed list of (slug, predicate) pairs evaluated
// after every ledger update.
var badges = []struct {
	slug string
	pred badgePredicate
}{
	{slug: BadgeExpert, pred: isExpert},
	{slug: BadgeFireStreak, pred: isOnFireStreak},
	{slug: BadgeAnticipator, pred: isAnticipator},
}

// evaluateBadges runs every predicate and awards matches idempotently inside
// the caller's transaction. A predicate error aborts the transaction; a
// duplicate award is a no-op.
func evaluateBadges(tx *gorm.DB, bc badgeContext) error {
	for _, b := range badges {
		ok, err := b.pred(tx, bc)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		award := models.UserBadge{UserID: bc.global.UserID, Slug: b.slug}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&award).Error; err != nil {
			return err
		}
		log.Infof("[Badges] user %d qualifies for %s", bc.global.UserID, b.slug)
	}
	return nil
}

// isExpert: a seasoned record in the triggering leg's sport.
func isExpert(_ *gorm.DB, bc badgeContext) (bool, error) {
	if bc.sport == nil {
		return false, nil
	}
	return bc.sport.TotalBets >= expertMinBets && bc.sport.Winrate() > expertMinWinrate, nil
}

// isOnFireStreak: a long unbroken run of wins across all sports.
func isOnFireStreak(_ *gorm.DB, bc badgeContext) (bool, error) {
	return bc.global.CurrentStreak >= fireStreakLength, nil
}

// isAnticipator: the triggering leg was placed well before kickoff and the
// user has a habit of doing so. Only settled legs count toward the habit,
// and the lead time must strictly exceed the threshold.
func isAnticipator(tx *gorm.DB, bc badgeContext) (bool, error) {
	if bc.match == nil {
		return false, nil
	}
	if bc.match.KickoffTime.Sub(bc.leg.CreatedAt) <= anticipatorLeadTime {
		return false, nil
	}

	var rows []struct {
		CreatedAt   time.Time
		KickoffTime time.Time
	}
	err := tx.Model(&models.BetLeg{}).
		Select("bet_legs.created_at, matches.kickoff_time").
		Joins("JOIN tickets ON tickets.id = bet_legs.ticket_id").
		Joins("JOIN matches ON matches.id = bet_legs.match_id").
		Where("tickets.user_id = ?", bc.global.UserID).
		Where("bet_legs.outcome IN ?", []string{
			models.BetOutcomeWon, models.BetOutcomeLost, models.BetOutcomeVoid,
		}).
		Scan(&rows).Error
	if err != nil {
		return false, err
	}

	count := 0
	for _, row := range rows {
		if row.KickoffTime.Sub(row.CreatedAt) > anticipatorLeadTime {
			count++
		}
	}
	return count >= anticipatorMinCount, nil
}
