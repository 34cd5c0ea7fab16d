package results

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/halobet/HaloBet/app/models"
)

// ErrNoMatchFound means neither the external id nor fuzzy team-name matching
// could tie a result update to a stored match.
var ErrNoMatchFound = errors.New("results: no stored match found for result")

// MatchThreshold is the trigram similarity a stored match must exceed on
// either team name before a result is applied to it.
const MatchThreshold = 0.6

// LegProcessor feeds a settled bet leg into the stats ledger. It is satisfied
// by the stats package; the resolver only ever calls it after its own
// transaction has committed.
type LegProcessor interface {
	ProcessLeg(ctx context.Context, legID uint) error
}

// ResultUpdate is one score tuple coming in from a result source or an admin.
type ResultUpdate struct {
	ExternalID string `json:"external_id" validate:"omitempty,max=64"`
	HomeTeam   string `json:"home_team" validate:"required_without=ExternalID"`
	AwayTeam   string `json:"away_team" validate:"required_without=ExternalID"`
	HomeScore  int    `json:"home_score" validate:"gte=0"`
	AwayScore  int    `json:"away_score" validate:"gte=0"`
}

// Resolver ties incoming score tuples to stored matches and drives settlement.
type Resolver struct {
	db   *gorm.DB
	legs LegProcessor
}

func NewResolver(db *gorm.DB, legs LegProcessor) *Resolver {
	return &Resolver{db: db, legs: legs}
}

// Resolve locates the stored match for one result update, writes the final
// score, settles every eligible pending leg and then pushes each settled leg
// through the stats ledger. The match write and the settlement commit
// atomically; ledger processing runs afterwards, one leg at a time, so a
// ledger failure never unwinds an already-final score.
func (r *Resolver) Resolve(ctx context.Context, upd ResultUpdate) error {
	var settled []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		match, err := FindMatch(tx, upd.ExternalID, upd.HomeTeam, upd.AwayTeam)
		if err != nil {
			return err
		}

		match.HomeScore = &upd.HomeScore
		match.AwayScore = &upd.AwayScore
		match.Status = models.MatchStatusFinished
		// Remember the provider's id so the next sync skips the fuzzy path.
		if upd.ExternalID != "" && match.ExternalID == nil {
			ext := upd.ExternalID
			match.ExternalID = &ext
		}
		if err := tx.Save(match).Error; err != nil {
			return err
		}

		settled, err = SettleMatch(tx, match)
		return err
	})
	if err != nil {
		return err
	}

	for _, legID := range settled {
		if err := r.legs.ProcessLeg(ctx, legID); err != nil {
			log.Errorf("[Results] stats processing failed for leg %d: %v", legID, err)
		}
	}
	return nil
}

// FindMatch resolves a stored match by external id first and falls back to
// trigram matching on team names. The fuzzy path scores every candidate as
// the better of its two team-name similarities and picks the best one
// strictly above MatchThreshold. Ticket ingestion uses the same lookup so
// an OCR'd fixture and a synced result land on the same row.
func FindMatch(tx *gorm.DB, externalID, homeTeam, awayTeam string) (*models.Match, error) {
	if externalID != "" {
		var match models.Match
		err := tx.Where("external_id = ?", externalID).First(&match).Error
		if err == nil {
			return &match, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if strings.TrimSpace(homeTeam) == "" && strings.TrimSpace(awayTeam) == "" {
		return nil, fmt.Errorf("external id %q unknown and no team names given: %w",
			externalID, ErrNoMatchFound)
	}

	// Candidate set is bounded by kickoff recency. Trigram scoring happens
	// here rather than in SQL because MySQL has no pg_trgm equivalent.
	var candidates []models.Match
	cutoff := time.Now().AddDate(0, 0, -30)
	if err := tx.Where("kickoff_time > ?", cutoff).Find(&candidates).Error; err != nil {
		return nil, err
	}

	var best *models.Match
	bestScore := 0.0
	for i := range candidates {
		c := &candidates[i]
		score := matchScore(homeTeam, awayTeam, c.HomeTeam, c.AwayTeam)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if best == nil || bestScore <= MatchThreshold {
		return nil, fmt.Errorf("no match above threshold for %q vs %q (best %.2f): %w",
			homeTeam, awayTeam, bestScore, ErrNoMatchFound)
	}
	return best, nil
}

// matchScore rates a stored match against a candidate fixture as the better
// of its two per-side team-name similarities. One exact side is enough to
// carry a sloppy spelling on the other.
func matchScore(candHome, candAway, storedHome, storedAway string) float64 {
	score := TrigramSimilarity(candHome, storedHome)
	if away := TrigramSimilarity(candAway, storedAway); away > score {
		score = away
	}
	return score
}

// Outcome classifies a final score into the 1X2 result labels used by
// settlement.
func Outcome(homeScore, awayScore int) string {
	switch {
	case homeScore > awayScore:
		return ResultHomeWin
	case awayScore > homeScore:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}
