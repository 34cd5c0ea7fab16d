package results

import (
	"errors"
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

	if err := db.AutoMigrate(&models.Sport{}, &models.League{}, &models.Match{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedMatch(t *testing.T, db *gorm.DB, home, away string) models.Match {
	t.Helper()

	sport := models.Sport{Name: "Football"}
	if err := db.Create(&sport).Error; err != nil {
		t.Fatalf("failed to seed sport: %v", err)
	}
	league := models.League{SportID: sport.ID, Name: "Premier League", Country: "England"}
	if err := db.Create(&league).Error; err != nil {
		t.Fatalf("failed to seed league: %v", err)
	}
	match := models.Match{
		LeagueID: league.ID, HomeTeam: home, AwayTeam: away,
		KickoffTime: time.Now().Add(-2 * time.Hour), Status: models.MatchStatusLive,
	}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("failed to seed match: %v", err)
	}
	return match
}

func TestFindMatchRejectsScoreAtThreshold(t *testing.T) {
	db := newTestDB(t)
	seedMatch(t, db, "Arsenal", "Borussia")

	// "Arsenax" shares 6 of 10 trigrams with "Arsenal", which lands exactly
	// on the threshold. Guard the fixture so the team names cannot drift.
	if sim := TrigramSimilarity("Arsenax", "Arsenal"); sim != MatchThreshold {
		t.Fatalf("fixture similarity = %v, want exactly %v", sim, MatchThreshold)
	}

	_, err := FindMatch(db, "", "Arsenax", "Nowhere United")
	if !errors.Is(err, ErrNoMatchFound) {
		t.Fatalf("a score equal to the threshold must not resolve, got %v", err)
	}
}

func TestFindMatchResolvesAboveThreshold(t *testing.T) {
	db := newTestDB(t)
	stored := seedMatch(t, db, "Arsenal", "Chelsea")

	match, err := FindMatch(db, "", "Arsenal FC", "Chelsy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.ID != stored.ID {
		t.Fatalf("resolved match %d, want %d", match.ID, stored.ID)
	}
}
