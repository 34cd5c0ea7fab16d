package results

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/halobet/HaloBet/app/models"
)

// Canonical 1X2 result labels.
const (
	ResultHomeWin = "home win"
	ResultAwayWin = "away win"
	ResultDraw    = "draw"
)

// selectionAliases maps each 1X2 result onto the spellings tipsters actually
// put on their slips. Comparison happens on trimmed, lowercased selections.
var selectionAliases = map[string][]string{
	ResultHomeWin: {"home win", "1", "home"},
	ResultAwayWin: {"away win", "2", "away"},
	ResultDraw:    {"draw", "x", "nul"},
}

// SettleMatch grades every pending leg on a finished match and returns the
// ids of the legs it settled. It must run inside the caller's transaction;
// the pending legs are row-locked so a concurrent settlement of the same
// match grades each leg exactly once.
//
// A selection naming any 1X2 outcome is graded won or lost against the final
// score. Selections outside the 1X2 alias sets (totals, handicaps, scorers)
// stay pending for manual settlement instead of being silently marked lost.
func SettleMatch(tx *gorm.DB, match *models.Match) ([]uint, error) {
	if !match.HasFinalScore() {
		return nil, fmt.Errorf("match %d has no final score", match.ID)
	}
	winning := Outcome(*match.HomeScore, *match.AwayScore)

	var legs []models.BetLeg
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("match_id = ? AND outcome = ?", match.ID, models.BetOutcomePending).
		Find(&legs).Error
	if err != nil {
		return nil, err
	}

	settled := make([]uint, 0, len(legs))
	for i := range legs {
		leg := &legs[i]
		outcome, ok := gradeSelection(leg.Selection, winning)
		if !ok {
			log.Infof("[Results] leg %d selection %q is not 1X2, left for manual settlement",
				leg.ID, leg.Selection)
			continue
		}
		if err := tx.Model(leg).Update("outcome", outcome).Error; err != nil {
			return nil, err
		}
		settled = append(settled, leg.ID)
	}

	log.Infof("[Results] match %d settled: %s %d-%d, %d legs graded, %d left pending",
		match.ID, winning, *match.HomeScore, *match.AwayScore, len(settled), len(legs)-len(settled))
	return settled, nil
}

// gradeSelection maps a raw slip selection onto won/lost for the given
// winning result. The second return is false when the selection is not a
// recognized 1X2 pick.
func gradeSelection(selection, winning string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(selection))

	for result, aliases := range selectionAliases {
		for _, alias := range aliases {
			if normalized == alias {
				if result == winning {
					return models.BetOutcomeWon, true
				}
				return models.BetOutcomeLost, true
			}
		}
	}
	return "", false
}

// PendingManualSettlement lists legs on finished matches that automatic
// settlement could not grade. Backoffice tooling works through this queue.
func PendingManualSettlement(db *gorm.DB) ([]models.BetLeg, error) {
	var legs []models.BetLeg
	err := db.Joins("JOIN matches ON matches.id = bet_legs.match_id").
		Where("bet_legs.outcome = ? AND matches.status = ?",
			models.BetOutcomePending, models.MatchStatusFinished).
		Find(&legs).Error
	return legs, err
}
