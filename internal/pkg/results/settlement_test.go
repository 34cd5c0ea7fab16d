package results

import (
	"testing"

	"github.com/halobet/HaloBet/app/models"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		home, away int
		want       string
	}{
		{home: 3, away: 1, want: ResultHomeWin},
		{home: 0, away: 2, want: ResultAwayWin},
		{home: 1, away: 1, want: ResultDraw},
		{home: 0, away: 0, want: ResultDraw},
	}

	for _, tt := range tests {
		if got := Outcome(tt.home, tt.away); got != tt.want {
			t.Fatalf("Outcome(%d, %d) = %q, want %q", tt.home, tt.away, got, tt.want)
		}
	}
}

func TestGradeSelectionHomeWin(t *testing.T) {
	// Match finished 3-1. The four slip spellings from the same ticket must
	// grade won, won, lost, lost.
	tests := []struct {
		selection string
		want      string
	}{
		{selection: "Home Win", want: models.BetOutcomeWon},
		{selection: "1", want: models.BetOutcomeWon},
		{selection: "Away", want: models.BetOutcomeLost},
		{selection: "Draw", want: models.BetOutcomeLost},
	}

	for _, tt := range tests {
		got, ok := gradeSelection(tt.selection, ResultHomeWin)
		if !ok {
			t.Fatalf("gradeSelection(%q) unexpectedly ungradable", tt.selection)
		}
		if got != tt.want {
			t.Fatalf("gradeSelection(%q, home win) = %q, want %q", tt.selection, got, tt.want)
		}
	}
}

func TestGradeSelectionNormalization(t *testing.T) {
	got, ok := gradeSelection("  HOME win  ", ResultHomeWin)
	if !ok || got != models.BetOutcomeWon {
		t.Fatalf("expected padded uppercase selection to grade won, got %q ok=%t", got, ok)
	}

	got, ok = gradeSelection("NUL", ResultDraw)
	if !ok || got != models.BetOutcomeWon {
		t.Fatalf("expected nul alias to grade won on a draw, got %q ok=%t", got, ok)
	}
}

func TestGradeSelectionUnsupportedMarket(t *testing.T) {
	for _, selection := range []string{"Over 2.5", "BTTS", "Haaland anytime", ""} {
		if _, ok := gradeSelection(selection, ResultHomeWin); ok {
			t.Fatalf("selection %q must stay pending, not be graded", selection)
		}
	}
}

func TestMatchScoreOneExactSideCarries(t *testing.T) {
	// "Real Madrid vs Barca" against stored "Real Madrid vs Barcelona": the
	// exact home side carries the abbreviated away side over the threshold.
	score := matchScore("Real Madrid", "Barca", "Real Madrid", "Barcelona")
	if score <= MatchThreshold {
		t.Fatalf("expected score above %v, got %f", MatchThreshold, score)
	}

	// Both sides foreign to the stored match must not clear the threshold.
	score = matchScore("Ajax", "Feyenoord", "Real Madrid", "Barcelona")
	if score >= MatchThreshold {
		t.Fatalf("expected unrelated fixture below %v, got %f", MatchThreshold, score)
	}
}
