package stats

import (
	"testing"

	"github.com/halobet/HaloBet/app/models"
)

func applySequence(t *testing.T, outcomes []string, odds float64) *models.UserGlobalStats {
	t.Helper()
	s := &models.UserGlobalStats{UserID: 1, HaloTier: models.HaloTierNone}
	for _, outcome := range outcomes {
		applyDelta(&s.TotalBets, &s.Wins, &s.Losses, &s.Voids,
			&s.CurrentStreak, &s.MaxStreak, &s.UnitsReturned, outcome, odds)
	}
	return s
}

func TestApplyDeltaStreaks(t *testing.T) {
	s := applySequence(t, []string{
		models.BetOutcomeWon, models.BetOutcomeWon, models.BetOutcomeLost,
		models.BetOutcomeWon, models.BetOutcomeWon, models.BetOutcomeWon,
	}, 2.0)

	if s.CurrentStreak != 3 {
		t.Fatalf("expected currentStreak=3, got %d", s.CurrentStreak)
	}
	if s.MaxStreak != 3 {
		t.Fatalf("expected maxStreak=3, got %d", s.MaxStreak)
	}
}

func TestApplyDeltaVoidIsStreakNeutral(t *testing.T) {
	s := applySequence(t, []string{
		models.BetOutcomeWon, models.BetOutcomeVoid, models.BetOutcomeWon,
	}, 1.8)

	if s.CurrentStreak != 2 {
		t.Fatalf("void must not break the streak, got currentStreak=%d", s.CurrentStreak)
	}
	if s.Voids != 1 {
		t.Fatalf("expected 1 void, got %d", s.Voids)
	}
	// Void refunds the unit stake: two wins at 1.8 plus one refunded unit.
	if want := 1.8 + 1 + 1.8; s.UnitsReturned != want {
		t.Fatalf("expected unitsReturned=%v, got %v", want, s.UnitsReturned)
	}
}

func TestApplyDeltaLedgerConservation(t *testing.T) {
	sequences := [][]string{
		{},
		{models.BetOutcomeWon},
		{models.BetOutcomeLost, models.BetOutcomeLost},
		{models.BetOutcomeWon, models.BetOutcomeVoid, models.BetOutcomeLost},
		{models.BetOutcomeVoid, models.BetOutcomeVoid, models.BetOutcomeWon, models.BetOutcomeLost},
	}

	for _, seq := range sequences {
		s := applySequence(t, seq, 2.5)
		if s.TotalBets != s.Wins+s.Losses+s.Voids {
			t.Fatalf("conservation violated for %v: total=%d wins=%d losses=%d voids=%d",
				seq, s.TotalBets, s.Wins, s.Losses, s.Voids)
		}
	}
}

func TestApplyDeltaWonReturnsOdds(t *testing.T) {
	s := applySequence(t, []string{models.BetOutcomeWon, models.BetOutcomeLost}, 3.2)

	if s.UnitsReturned != 3.2 {
		t.Fatalf("expected unitsReturned=3.2, got %v", s.UnitsReturned)
	}
	// Two units risked, 3.2 returned: ROI = (3.2-2)/2 = 60%.
	if got := s.ROI(); got != 60 {
		t.Fatalf("expected ROI=60, got %v", got)
	}
}

func TestWinrateExcludesVoids(t *testing.T) {
	s := applySequence(t, []string{
		models.BetOutcomeWon, models.BetOutcomeWon, models.BetOutcomeLost, models.BetOutcomeVoid,
	}, 2.0)

	// 2 wins out of 3 decided bets.
	want := 2.0 / 3.0 * 100
	if got := s.Winrate(); got != want {
		t.Fatalf("expected winrate=%v, got %v", want, got)
	}
}
