package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/paaga/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "paaga-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func testDate(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return value.UTC()
}

func createTestChallenge(t *testing.T, repo *ChallengeRepository, userID string, start string, today string) models.Challenge {
	t.Helper()

	startDate := testDate(t, start)
	challenge := models.Challenge{
		UserID:    userID,
		StartDate: startDate,
		WindowEnd: startDate.AddDate(0, 0, models.ChallengeLengthDays-1),
	}
	inserted, err := repo.CreateUnlessOpen(&challenge, testDate(t, today))
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	if !inserted {
		t.Fatalf("expected challenge for %s starting %s to be inserted", userID, start)
	}
	return challenge
}
