package stats

import (
	"testing"
	"time"

	"github.com/halobet/HaloBet/app/models"
)

func TestIsExpert(t *testing.T) {
	tests := []struct {
		name  string
		sport *models.UserSportStats
		want  bool
	}{
		{name: "no sport row", sport: nil, want: false},
		{name: "too few bets", sport: &models.UserSportStats{TotalBets: 14, Wins: 14}, want: false},
		{name: "winrate too low", sport: &models.UserSportStats{TotalBets: 20, Wins: 13}, want: false},
		{name: "qualifies", sport: &models.UserSportStats{TotalBets: 20, Wins: 14}, want: true},
	}

	for _, tt := range tests {
		got, err := isExpert(nil, badgeContext{
			global: &models.UserGlobalStats{UserID: 1},
			sport:  tt.sport,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: isExpert = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestIsOnFireStreak(t *testing.T) {
	for streak, want := range map[uint]bool{6: false, 7: true, 12: true} {
		got, err := isOnFireStreak(nil, badgeContext{
			global: &models.UserGlobalStats{UserID: 1, CurrentStreak: streak},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("streak %d: isOnFireStreak = %t, want %t", streak, got, want)
		}
	}
}

func TestIsAnticipatorShortLeadTime(t *testing.T) {
	kickoff := time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC)
	bc := badgeContext{
		global: &models.UserGlobalStats{UserID: 1},
		match:  &models.Match{KickoffTime: kickoff},
		leg:    &models.BetLeg{CreatedAt: kickoff.Add(-2 * time.Hour)},
	}

	// Placed only 2h before kickoff: the predicate bails before touching
	// the database, so a nil handle is fine here.
	got, err := isAnticipator(nil, bc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("2h lead time must not qualify")
	}

	// exactly 24h is not "more than a day ahead"
	bc.leg = &models.BetLeg{CreatedAt: kickoff.Add(-anticipatorLeadTime)}
	got, err = isAnticipator(nil, bc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("a lead time of exactly 24h must not qualify")
	}
}

func TestIsAnticipatorCountsOnlySettledEarlyLegs(t *testing.T) {
	db := newTestDB(t)
	user, league := seedFixture(t, db)
	kickoff := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	match := models.Match{
		LeagueID: league.ID, HomeTeam: "Arsenal", AwayTeam: "Chelsea",
		KickoffTime: kickoff, Status: models.MatchStatusFinished,
	}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("failed to seed match: %v", err)
	}
	ticket := models.Ticket{
		UUID: "22222222-2222-2222-2222-222222222222", UserID: user.ID,
		StorageKey: "tickets/2.jpg", Status: models.TicketStatusValidated,
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("failed to seed ticket: %v", err)
	}

	// nine settled early legs, one settled leg at exactly 24h (does not
	// count) and one early leg still pending (does not count yet)
	for i := 0; i < 9; i++ {
		leg := models.BetLeg{TicketID: ticket.ID, MatchID: match.ID, Selection: "1",
			Odds: 2.0, Outcome: models.BetOutcomeWon, CreatedAt: kickoff.Add(-48 * time.Hour)}
		if err := db.Create(&leg).Error; err != nil {
			t.Fatalf("failed to seed leg: %v", err)
		}
	}
	boundary := models.BetLeg{TicketID: ticket.ID, MatchID: match.ID, Selection: "1",
		Odds: 2.0, Outcome: models.BetOutcomeWon, CreatedAt: kickoff.Add(-anticipatorLeadTime)}
	if err := db.Create(&boundary).Error; err != nil {
		t.Fatalf("failed to seed leg: %v", err)
	}
	pending := models.BetLeg{TicketID: ticket.ID, MatchID: match.ID, Selection: "x",
		Odds: 3.0, Outcome: models.BetOutcomePending, CreatedAt: kickoff.Add(-48 * time.Hour)}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("failed to seed leg: %v", err)
	}

	bc := badgeContext{
		global: &models.UserGlobalStats{UserID: user.ID},
		match:  &match,
		leg:    &models.BetLeg{CreatedAt: kickoff.Add(-48 * time.Hour)},
	}

	got, err := isAnticipator(db, bc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("9 settled early legs must not qualify")
	}

	// the pending leg settles and becomes the tenth
	err = db.Model(&models.BetLeg{}).Where("id = ?", pending.ID).
		Update("outcome", models.BetOutcomeLost).Error
	if err != nil {
		t.Fatalf("failed to settle leg: %v", err)
	}

	got, err = isAnticipator(db, bc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("10 settled early legs must qualify")
	}
}
