package services

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/models"
)

func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func openTestRepositories(t *testing.T) *db.Repositories {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "wellnest-test.db"), logrus.New())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("load sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db.NewRepositories(database)
}

func createTestUser(t *testing.T, repos *db.Repositories, email string) models.User {
	t.Helper()

	user := models.User{
		Email:              email,
		PasswordHash:       "test-hash",
		Language:           "en",
		ReminderDaysBefore: models.DefaultReminderDaysBefore,
		CreatedAt:          time.Now().UTC(),
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

type testRoutineTransactor struct {
	repos *db.Repositories
}

func (transactor testRoutineTransactor) InTransaction(fn func(stores RoutineStores) error) error {
	return transactor.repos.InTransaction(func(tx *db.Repositories) error {
		return fn(RoutineStores{Routines: tx.Routines, Goals: tx.Goals, Food: tx.FoodEntries})
	})
}

func newTestRoutineService(repos *db.Repositories) *RoutineService {
	return NewRoutineService(
		RoutineStores{Routines: repos.Routines, Goals: repos.Goals, Food: repos.FoodEntries},
		testRoutineTransactor{repos: repos},
	)
}

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()

	day, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}
