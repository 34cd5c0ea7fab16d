package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halobet/HaloBet/app/models"
)

// Ledger maintains the per-user global and per-sport betting aggregates.
// Every mutation runs inside one transaction per leg, serialized through row
// locks on the leg and the stats rows, so concurrent workers and replays
// apply each leg exactly once.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ProcessLeg folds one settled leg into the user's ledgers, refreshes the
// reputation score and evaluates badges. A leg whose outcome is still
// pending, or that was already processed, is a no-op. Legs created at or
// after kickoff are marked processed without contributing any delta.
func (l *Ledger) ProcessLeg(ctx context.Context, legID uint) error {
	var userID uint
	var score int
	var tier string

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var leg models.BetLeg
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&leg, legID).Error
		if err != nil {
			return fmt.Errorf("lock leg %d: %w", legID, err)
		}
		if leg.StatsProcessed {
			// Another worker got here first.
			return nil
		}
		if !leg.IsFinal() {
			return fmt.Errorf("leg %d outcome %q is not terminal", legID, leg.Outcome)
		}

		var ticket models.Ticket
		if err := tx.First(&ticket, leg.TicketID).Error; err != nil {
			return fmt.Errorf("load ticket %d: %w", leg.TicketID, err)
		}
		var match models.Match
		if err := tx.Preload("League").First(&match, leg.MatchID).Error; err != nil {
			return fmt.Errorf("load match %d: %w", leg.MatchID, err)
		}

		// Bets logged after kickoff never count toward statistics.
		if !leg.CreatedAt.Before(match.KickoffTime) {
			log.Infof("[Stats] leg %d placed after kickoff, excluded from ledgers", leg.ID)
			return tx.Model(&leg).Update("stats_processed", true).Error
		}

		global, err := lockOrCreateGlobal(tx, ticket.UserID)
		if err != nil {
			return err
		}
		applyDelta(&global.TotalBets, &global.Wins, &global.Losses, &global.Voids,
			&global.CurrentStreak, &global.MaxStreak, &global.UnitsReturned,
			leg.Outcome, leg.Odds)

		sport, err := lockOrCreateSport(tx, ticket.UserID, match.League.SportID)
		if err != nil {
			return err
		}
		applyDelta(&sport.TotalBets, &sport.Wins, &sport.Losses, &sport.Voids,
			&sport.CurrentStreak, &sport.MaxStreak, &sport.UnitsReturned,
			leg.Outcome, leg.Odds)
		if err := tx.Save(sport).Error; err != nil {
			return err
		}

		if err := tx.Model(&leg).Update("stats_processed", true).Error; err != nil {
			return err
		}

		if err := updateReputation(tx, global, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(global).Error; err != nil {
			return err
		}

		if err := evaluateBadges(tx, badgeContext{
			leg:    &leg,
			match:  &match,
			global: global,
			sport:  sport,
		}); err != nil {
			return err
		}

		userID = ticket.UserID
		score = global.ReputationScore
		tier = global.HaloTier
		return nil
	})
	if err != nil {
		return err
	}

	if userID != 0 {
		if cacheErr := snapshotReputation(userID, score, tier); cacheErr != nil {
			log.Warnf("[Stats] reputation cache refresh failed for user %d: %v", userID, cacheErr)
		}
	}
	return nil
}

// RecomputeAll rebuilds every ledger from scratch by zeroing all stats rows,
// clearing the processed flags and replaying settled legs in creation order.
// It is the recovery path after a settlement bug, not part of normal
// operation.
func (l *Ledger) RecomputeAll(ctx context.Context) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserGlobalStats{}).Where("1 = 1").Updates(map[string]interface{}{
			"total_bets": 0, "wins": 0, "losses": 0, "voids": 0,
			"current_streak": 0, "max_streak": 0, "units_returned": 0,
			"reputation_score": 0, "halo_tier": models.HaloTierNone,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.UserSportStats{}).Where("1 = 1").Updates(map[string]interface{}{
			"total_bets": 0, "wins": 0, "losses": 0, "voids": 0,
			"current_streak": 0, "max_streak": 0, "units_returned": 0,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.BetLeg{}).
			Where("stats_processed = ?", true).
			Update("stats_processed", false).Error
	})
	if err != nil {
		return fmt.Errorf("reset ledgers: %w", err)
	}

	var legIDs []uint
	err = l.db.WithContext(ctx).Model(&models.BetLeg{}).
		Where("outcome IN ?", []string{models.BetOutcomeWon, models.BetOutcomeLost, models.BetOutcomeVoid}).
		Order("created_at ASC, id ASC").
		Pluck("id", &legIDs).Error
	if err != nil {
		return err
	}

	for _, id := range legIDs {
		if err := l.ProcessLeg(ctx, id); err != nil {
			return fmt.Errorf("replay leg %d: %w", id, err)
		}
	}
	log.Infof("[Stats] recompute finished, %d legs replayed", len(legIDs))
	return nil
}

// applyDelta applies one settled leg to a ledger row. Won returns the odds
// and extends the streak, lost resets the streak, void refunds the unit
// stake and leaves the streak untouched.
func applyDelta(totalBets, wins, losses, voids, currentStreak, maxStreak *uint,
	unitsReturned *float64, outcome string, odds float64) {
	*totalBets++
	switch outcome {
	case models.BetOutcomeWon:
		*wins++
		*unitsReturned += odds
		*currentStreak++
		if *currentStreak > *maxStreak {
			*maxStreak = *currentStreak
		}
	case models.BetOutcomeLost:
		*losses++
		*currentStreak = 0
	case models.BetOutcomeVoid:
		*voids++
		*unitsReturned += 1
	}
}

func lockOrCreateGlobal(tx *gorm.DB, userID uint) (*models.UserGlobalStats, error) {
	var global models.UserGlobalStats
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&global).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		global = models.UserGlobalStats{UserID: userID, HaloTier: models.HaloTierNone}
		if createErr := tx.Create(&global).Error; createErr != nil {
			return nil, createErr
		}
		return &global, nil
	}
	if err != nil {
		return nil, err
	}
	return &global, nil
}

func lockOrCreateSport(tx *gorm.DB, userID, sportID uint) (*models.UserSportStats, error) {
	var sport models.UserSportStats
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND sport_id = ?", userID, sportID).
		First(&sport).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sport = models.UserSportStats{UserID: userID, SportID: sportID}
		if createErr := tx.Create(&sport).Error; createErr != nil {
			return nil, createErr
		}
		return &sport, nil
	}
	if err != nil {
		return nil, err
	}
	return &sport, nil
}
