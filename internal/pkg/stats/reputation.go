package stats

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
	"github.com/halobet/HaloBet/internal/pkg/cache"
)

// ReputationWindow is the trailing slice of bet history reputation is scored
// over.
const ReputationWindow = 30 * 24 * time.Hour

// ReputationCacheTTL bounds how stale a cached reputation snapshot may get
// before profile reads fall back to the database.
const ReputationCacheTTL = 6 * time.Hour

// WindowStats summarizes a user's decided legs (won or lost, voids excluded)
// inside the reputation window.
type WindowStats struct {
	Bets           int
	Wins           int
	WinningOddsSum float64
}

// Winrate returns the window win percentage, zero for an empty window.
func (w WindowStats) Winrate() float64 {
	if w.Bets == 0 {
		return 0
	}
	return float64(w.Wins) / float64(w.Bets) * 100
}

// Yield returns the window yield percentage under the unit-stake model:
// every bet risks one unit, a win returns its odds.
func (w WindowStats) Yield() float64 {
	if w.Bets == 0 {
		return 0
	}
	return (w.WinningOddsSum - float64(w.Bets)) / float64(w.Bets) * 100
}

// Score maps winrate and yield percentages onto the 0..100 reputation scale.
// Winrate contributes up to 40 points, yield up to 60.
func Score(winrate, yield float64) int {
	score := 0

	switch {
	case winrate > 60:
		score += 40
	case winrate > 50:
		score += 30
	case winrate > 40:
		score += 20
	case winrate > 30:
		score += 10
	}

	switch {
	case yield > 10:
		score += 60
	case yield > 5:
		score += 45
	case yield > 0:
		score += 30
	case yield > -10:
		score += 10
	}

	return score
}

// TierForScore maps a reputation score onto the halo tier label.
func TierForScore(score int) string {
	switch {
	case score >= 80:
		return models.HaloTierGold
	case score >= 60:
		return models.HaloTierSilver
	case score >= 40:
		return models.HaloTierBronze
	default:
		return models.HaloTierNone
	}
}

// windowStats collects the user's decided legs inside the trailing window.
// Legs placed at or after kickoff are skipped, same eligibility rule the
// ledger applies; a late leg never counts anywhere.
func windowStats(tx *gorm.DB, userID uint, now time.Time) (WindowStats, error) {
	var rows []struct {
		Outcome string
		Odds    float64
	}
	err := tx.Model(&models.BetLeg{}).
		Select("bet_legs.outcome, bet_legs.odds").
		Joins("JOIN tickets ON tickets.id = bet_legs.ticket_id").
		Joins("JOIN matches ON matches.id = bet_legs.match_id").
		Where("tickets.user_id = ?", userID).
		Where("bet_legs.outcome IN ?", []string{models.BetOutcomeWon, models.BetOutcomeLost}).
		Where("bet_legs.created_at < matches.kickoff_time").
		Where("bet_legs.created_at >= ?", now.Add(-ReputationWindow)).
		Scan(&rows).Error
	if err != nil {
		return WindowStats{}, err
	}

	var w WindowStats
	for _, row := range rows {
		w.Bets++
		if row.Outcome == models.BetOutcomeWon {
			w.Wins++
			w.WinningOddsSum += row.Odds
		}
	}
	return w, nil
}

// updateReputation recomputes the user's reputation from the trailing window
// and writes score and tier onto the already-locked global stats row. The
// caller's transaction persists the row.
func updateReputation(tx *gorm.DB, global *models.UserGlobalStats, now time.Time) error {
	w, err := windowStats(tx, global.UserID, now)
	if err != nil {
		return err
	}

	global.ReputationScore = Score(w.Winrate(), w.Yield())
	global.HaloTier = TierForScore(global.ReputationScore)
	return nil
}

// snapshotReputation mirrors the committed score into the cache for the
// profile and leaderboard read paths. Failures are non-fatal; the database
// row stays canonical.
func snapshotReputation(userID uint, score int, tier string) error {
	key := fmt.Sprintf("reputation:user:%d", userID)
	return cache.Set(key, fmt.Sprintf("%d:%s", score, tier), ReputationCacheTTL)
}
