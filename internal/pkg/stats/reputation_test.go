package stats

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/halobet/HaloBet/app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{}, &models.Sport{}, &models.League{},
		&models.Match{}, &models.Ticket{}, &models.BetLeg{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedFixture(t *testing.T, db *gorm.DB) (models.User, models.League) {
	t.Helper()

	user := models.User{Name: "Mara", Email: "mara@example.com", Password: "secret"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	sport := models.Sport{Name: "Football"}
	if err := db.Create(&sport).Error; err != nil {
		t.Fatalf("failed to seed sport: %v", err)
	}
	league := models.League{SportID: sport.ID, Name: "Premier League", Country: "England"}
	if err := db.Create(&league).Error; err != nil {
		t.Fatalf("failed to seed league: %v", err)
	}
	return user, league
}

func TestScoreEmptyWindow(t *testing.T) {
	w := WindowStats{}
	if got := Score(w.Winrate(), w.Yield()); got != 0 {
		t.Fatalf("empty window must score 0, got %d", got)
	}
	if got := TierForScore(0); got != models.HaloTierNone {
		t.Fatalf("score 0 must map to tier none, got %q", got)
	}
}

func TestScoreTopBuckets(t *testing.T) {
	// Winrate 65% and yield 12% hit the top bucket on both axes.
	if got := Score(65, 12); got != 100 {
		t.Fatalf("expected 40+60=100, got %d", got)
	}
	if got := TierForScore(100); got != models.HaloTierGold {
		t.Fatalf("score 100 must map to gold, got %q", got)
	}
}

func TestScoreBuckets(t *testing.T) {
	tests := []struct {
		winrate, yield float64
		want           int
	}{
		{winrate: 61, yield: 11, want: 100},
		{winrate: 60, yield: 10, want: 30 + 45}, // boundaries are exclusive
		{winrate: 51, yield: 6, want: 30 + 45},
		{winrate: 41, yield: 0.5, want: 20 + 30},
		{winrate: 31, yield: -5, want: 10 + 10},
		{winrate: 30, yield: -10, want: 0},
		{winrate: 0, yield: -50, want: 0},
	}

	for _, tt := range tests {
		if got := Score(tt.winrate, tt.yield); got != tt.want {
			t.Fatalf("Score(%v, %v) = %d, want %d", tt.winrate, tt.yield, got, tt.want)
		}
	}
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 100, want: models.HaloTierGold},
		{score: 80, want: models.HaloTierGold},
		{score: 79, want: models.HaloTierSilver},
		{score: 60, want: models.HaloTierSilver},
		{score: 59, want: models.HaloTierBronze},
		{score: 40, want: models.HaloTierBronze},
		{score: 39, want: models.HaloTierNone},
		{score: 0, want: models.HaloTierNone},
	}

	for _, tt := range tests {
		if got := TierForScore(tt.score); got != tt.want {
			t.Fatalf("TierForScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestWindowStatsSkipsIneligibleLegs(t *testing.T) {
	db := newTestDB(t)
	user, league := seedFixture(t, db)
	now := time.Now()

	finished := models.Match{
		LeagueID: league.ID, HomeTeam: "Arsenal", AwayTeam: "Chelsea",
		KickoffTime: now.Add(-48 * time.Hour), Status: models.MatchStatusFinished,
	}
	recent := models.Match{
		LeagueID: league.ID, HomeTeam: "Lyon", AwayTeam: "Nice",
		KickoffTime: now.Add(-10 * time.Hour), Status: models.MatchStatusFinished,
	}
	for _, m := range []*models.Match{&finished, &recent} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("failed to seed match: %v", err)
		}
	}

	ticket := models.Ticket{
		UUID: "11111111-1111-1111-1111-111111111111", UserID: user.ID,
		StorageKey: "tickets/1.jpg", Status: models.TicketStatusValidated,
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("failed to seed ticket: %v", err)
	}

	legs := []models.BetLeg{
		// placed a full day after kickoff; won at long odds but ineligible
		{TicketID: ticket.ID, MatchID: finished.ID, Selection: "1", Odds: 5.0,
			Outcome: models.BetOutcomeWon, CreatedAt: finished.KickoffTime.Add(24 * time.Hour)},
		// placed exactly at kickoff; still ineligible
		{TicketID: ticket.ID, MatchID: recent.ID, Selection: "1", Odds: 4.0,
			Outcome: models.BetOutcomeWon, CreatedAt: recent.KickoffTime},
		// placed before kickoff; counts
		{TicketID: ticket.ID, MatchID: recent.ID, Selection: "1", Odds: 2.0,
			Outcome: models.BetOutcomeWon, CreatedAt: recent.KickoffTime.Add(-6 * time.Hour)},
		{TicketID: ticket.ID, MatchID: recent.ID, Selection: "x", Odds: 3.0,
			Outcome: models.BetOutcomeLost, CreatedAt: recent.KickoffTime.Add(-5 * time.Hour)},
	}
	for i := range legs {
		if err := db.Create(&legs[i]).Error; err != nil {
			t.Fatalf("failed to seed leg: %v", err)
		}
	}

	w, err := windowStats(db, user.ID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Bets != 2 || w.Wins != 1 {
		t.Fatalf("expected 2 eligible bets with 1 win, got %+v", w)
	}
	if w.WinningOddsSum != 2.0 {
		t.Fatalf("post-kickoff wins must not contribute odds, got %v", w.WinningOddsSum)
	}
}

func TestWindowStatsYield(t *testing.T) {
	// 3 bets, one win at odds 3.6: yield = (3.6-3)/3 = 20%.
	w := WindowStats{Bets: 3, Wins: 1, WinningOddsSum: 3.6}
	if got := w.Yield(); got < 19.99 || got > 20.01 {
		t.Fatalf("expected yield ~20, got %v", got)
	}
	if got := w.Winrate(); got < 33.3 || got > 33.4 {
		t.Fatalf("expected winrate ~33.3, got %v", got)
	}
}
