package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

func openRepositoriesForTest(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(openSQLiteForTest(t, filepath.Join(t.TempDir(), "wellnest-repos.db")))
}

func createUserForTest(t *testing.T, repos *Repositories, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "hash", ReminderDaysBefore: 2, CreatedAt: time.Now().UTC()}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRoutineRepositoryUpsertOverwritesSameDay(t *testing.T) {
	repos := openRepositoriesForTest(t)
	user := createUserForTest(t, repos, "routine@example.com")
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	if err := repos.Routines.Upsert(&models.DailyRoutine{UserID: user.ID, Date: day, WaterML: 500, Steps: 1000}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repos.Routines.Upsert(&models.DailyRoutine{UserID: user.ID, Date: day, WaterML: 1200, Notes: "walked"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if err := repos.Routines.Upsert(&models.DailyRoutine{UserID: user.ID, Date: day.AddDate(0, 0, 1), WaterML: 800}); err != nil {
		t.Fatalf("next day upsert: %v", err)
	}

	routine, found, err := repos.Routines.FindByUserAndDate(user.ID, day)
	if err != nil || !found {
		t.Fatalf("FindByUserAndDate() found=%v err=%v", found, err)
	}
	if routine.WaterML != 1200 || routine.Steps != 0 || routine.Notes != "walked" {
		t.Fatalf("expected overwritten routine, got %+v", routine)
	}

	total, err := repos.Routines.SumMetricByUserRange(user.ID, "water_ml", day, day.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("SumMetricByUserRange() unexpected error: %v", err)
	}
	if total != 2000 {
		t.Fatalf("expected 2000 ml over the week, got %v", total)
	}

	if _, err := repos.Routines.SumMetricByUserRange(user.ID, "id; DROP TABLE users", day, day); err == nil {
		t.Fatal("expected unknown metric column to be rejected")
	}
}

func TestGoalRepositoryUpsertProgress(t *testing.T) {
	repos := openRepositoriesForTest(t)
	user := createUserForTest(t, repos, "goal@example.com")
	periodStart := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	goal := models.Goal{UserID: user.ID, Title: "Steps", Metric: models.GoalMetricSteps, Period: models.GoalPeriodWeekly, Target: 50000, Active: true}
	if err := repos.Goals.Create(&goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if err := repos.Goals.UpsertProgress(&models.GoalProgress{GoalID: goal.ID, PeriodStart: periodStart, Value: 10000}); err != nil {
		t.Fatalf("first progress upsert: %v", err)
	}
	achievedAt := time.Date(2024, time.May, 9, 18, 0, 0, 0, time.UTC)
	if err := repos.Goals.UpsertProgress(&models.GoalProgress{GoalID: goal.ID, PeriodStart: periodStart, Value: 52000, Achieved: true, AchievedAt: &achievedAt}); err != nil {
		t.Fatalf("second progress upsert: %v", err)
	}

	progress, found, err := repos.Goals.FindProgress(goal.ID, periodStart)
	if err != nil || !found {
		t.Fatalf("FindProgress() found=%v err=%v", found, err)
	}
	if progress.Value != 52000 || !progress.Achieved || progress.AchievedAt == nil || !progress.AchievedAt.Equal(achievedAt) {
		t.Fatalf("unexpected progress %+v", progress)
	}

	rows, err := repos.Goals.ListProgress(goal.ID, 10)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected a single progress row, got %v (err %v)", rows, err)
	}

	deleted, err := repos.Goals.DeleteByUserAndID(user.ID, goal.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteByUserAndID() deleted=%v err=%v", deleted, err)
	}
	if _, found, _ := repos.Goals.FindProgress(goal.ID, periodStart); found {
		t.Fatal("expected progress rows to be removed with the goal")
	}
}

func TestRepositoriesInTransactionRollsBack(t *testing.T) {
	repos := openRepositoriesForTest(t)
	user := createUserForTest(t, repos, "tx@example.com")
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	failure := errors.New("abort")

	err := repos.InTransaction(func(tx *Repositories) error {
		if err := tx.Routines.Upsert(&models.DailyRoutine{UserID: user.ID, Date: day, Steps: 9000}); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected transaction error to surface, got %v", err)
	}

	if _, found, err := repos.Routines.FindByUserAndDate(user.ID, day); err != nil || found {
		t.Fatalf("expected routine insert to be rolled back, found=%v err=%v", found, err)
	}
}

func TestCycleSettingsRepository(t *testing.T) {
	repos := openRepositoriesForTest(t)
	user := createUserForTest(t, repos, "cycle@example.com")

	if _, found, err := repos.CycleSettings.FindByUser(user.ID); err != nil || found {
		t.Fatalf("expected no settings, found=%v err=%v", found, err)
	}

	settings := models.CycleSettings{
		UserID:          user.ID,
		StartDate:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		CycleLength:     30,
		MenstrualLength: 4,
	}
	if err := repos.CycleSettings.Save(&settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	remindedFor := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	if err := repos.CycleSettings.MarkReminded(user.ID, remindedFor); err != nil {
		t.Fatalf("mark reminded: %v", err)
	}

	stored, found, err := repos.CycleSettings.FindByUser(user.ID)
	if err != nil || !found {
		t.Fatalf("FindByUser() found=%v err=%v", found, err)
	}
	if !stored.StartDate.Equal(settings.StartDate) || stored.CycleLength != 30 || stored.MenstrualLength != 4 {
		t.Fatalf("unexpected stored settings %+v", stored)
	}
	if stored.LastReminderFor == nil || !stored.LastReminderFor.Equal(remindedFor) {
		t.Fatalf("unexpected reminder marker %v", stored.LastReminderFor)
	}
}

func TestFoodEntryRepositorySumsCaloriesWithServings(t *testing.T) {
	repos := openRepositoriesForTest(t)
	user := createUserForTest(t, repos, "food@example.com")
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	for _, entry := range []models.FoodEntry{
		{UserID: user.ID, Date: day, Meal: models.MealLunch, Name: "Rice", Servings: 2, Calories: 200},
		{UserID: user.ID, Date: day, Meal: models.MealDinner, Name: "Fish", Servings: 1, Calories: 350},
		{UserID: user.ID, Date: day.AddDate(0, 0, 1), Meal: models.MealLunch, Name: "Tomorrow", Servings: 1, Calories: 999},
	} {
		entry := entry
		if err := repos.FoodEntries.Create(&entry); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	total, err := repos.FoodEntries.SumCaloriesByUserRange(user.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SumCaloriesByUserRange() unexpected error: %v", err)
	}
	if total != 750 {
		t.Fatalf("expected 750 kcal, got %v", total)
	}
}
