package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

var (
	ErrRoutineValueOutOfRange = errors.New("routine value out of range")
	ErrRoutineNotesTooLong    = errors.New("routine notes too long")
	ErrRoutineNotFound        = errors.New("routine not found")
)

const (
	maxRoutineWaterML  = 20000
	maxRoutineSteps    = 200000
	maxRoutineMinutes  = 24 * 60
	maxRoutineNotesLen = 1000
)

type RoutineStore interface {
	FindByUserAndDate(userID uint, day time.Time) (models.DailyRoutine, bool, error)
	Upsert(routine *models.DailyRoutine) error
	SumMetricByUserRange(userID uint, column string, from time.Time, to time.Time) (float64, error)
}

type GoalStore interface {
	ListByUser(userID uint) ([]models.Goal, error)
	ListActiveByUser(userID uint) ([]models.Goal, error)
	FindByUserAndID(userID uint, goalID uint) (models.Goal, bool, error)
	Create(goal *models.Goal) error
	DeleteByUserAndID(userID uint, goalID uint) (bool, error)
	FindProgress(goalID uint, periodStart time.Time) (models.GoalProgress, bool, error)
	UpsertProgress(progress *models.GoalProgress) error
	ListProgress(goalID uint, limit int) ([]models.GoalProgress, error)
}

type CalorieStore interface {
	SumCaloriesByUserRange(userID uint, from time.Time, to time.Time) (float64, error)
}

type RoutineStores struct {
	Routines RoutineStore
	Goals    GoalStore
	Food     CalorieStore
}

type RoutineTransactor interface {
	InTransaction(fn func(stores RoutineStores) error) error
}

type RoutineInput struct {
	WaterML        int
	Steps          int
	SleepMinutes   int
	WorkoutMinutes int
	Notes          string
}

type RoutineSaveResult struct {
	Routine  models.DailyRoutine   `json:"routine"`
	Progress []models.GoalProgress `json:"goal_progress"`
}

type RoutineService struct {
	stores     RoutineStores
	transactor RoutineTransactor
}

func NewRoutineService(stores RoutineStores, transactor RoutineTransactor) *RoutineService {
	return &RoutineService{stores: stores, transactor: transactor}
}

func (service *RoutineService) Routine(userID uint, day time.Time) (models.DailyRoutine, error) {
	routine, found, err := service.stores.Routines.FindByUserAndDate(userID, day)
	if err != nil {
		return models.DailyRoutine{}, err
	}
	if !found {
		return models.DailyRoutine{}, ErrRoutineNotFound
	}
	return routine, nil
}

func (service *RoutineService) SaveDailyRoutine(userID uint, day time.Time, input RoutineInput, now time.Time) (RoutineSaveResult, error) {
	if err := validateRoutineInput(input); err != nil {
		return RoutineSaveResult{}, err
	}

	result := RoutineSaveResult{}
	err := service.transactor.InTransaction(func(stores RoutineStores) error {
		if err := stores.Routines.Upsert(&models.DailyRoutine{
			UserID:         userID,
			Date:           day,
			WaterML:        input.WaterML,
			Steps:          input.Steps,
			SleepMinutes:   input.SleepMinutes,
			WorkoutMinutes: input.WorkoutMinutes,
			Notes:          strings.TrimSpace(input.Notes),
			CreatedAt:      now,
			UpdatedAt:      now,
		}); err != nil {
			return fmt.Errorf("upsert routine: %w", err)
		}

		routine, _, err := stores.Routines.FindByUserAndDate(userID, day)
		if err != nil {
			return err
		}
		result.Routine = routine

		progress, err := refreshGoalProgress(stores, userID, day, now)
		if err != nil {
			return err
		}
		result.Progress = progress
		return nil
	})
	if err != nil {
		return RoutineSaveResult{}, err
	}
	return result, nil
}

func (service *RoutineService) RefreshGoalProgress(userID uint, day time.Time, now time.Time) ([]models.GoalProgress, error) {
	var progress []models.GoalProgress
	err := service.transactor.InTransaction(func(stores RoutineStores) error {
		refreshed, err := refreshGoalProgress(stores, userID, day, now)
		progress = refreshed
		return err
	})
	return progress, err
}

func refreshGoalProgress(stores RoutineStores, userID uint, day time.Time, now time.Time) ([]models.GoalProgress, error) {
	goals, err := stores.Goals.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	refreshed := make([]models.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		from, to := GoalPeriodWindow(goal.Period, day)

		var value float64
		if goal.Metric == models.GoalMetricCalories {
			value, err = stores.Food.SumCaloriesByUserRange(userID, from, to)
		} else {
			value, err = stores.Routines.SumMetricByUserRange(userID, goal.Metric, from, to)
		}
		if err != nil {
			return nil, fmt.Errorf("sum goal %d metric: %w", goal.ID, err)
		}

		existing, found, err := stores.Goals.FindProgress(goal.ID, from)
		if err != nil {
			return nil, err
		}

		progress := models.GoalProgress{
			GoalID:      goal.ID,
			PeriodStart: from,
			Value:       math.Round(value*10) / 10,
			Achieved:    value >= goal.Target,
			UpdatedAt:   now,
		}
		if progress.Achieved {
			achievedAt := now
			if found && existing.AchievedAt != nil {
				achievedAt = *existing.AchievedAt
			}
			progress.AchievedAt = &achievedAt
		}
		if err := stores.Goals.UpsertProgress(&progress); err != nil {
			return nil, fmt.Errorf("upsert goal %d progress: %w", goal.ID, err)
		}
		refreshed = append(refreshed, progress)
	}
	return refreshed, nil
}

// GoalPeriodWindow returns the half-open window [from, to). Weeks start on Monday.
func GoalPeriodWindow(period string, day time.Time) (time.Time, time.Time) {
	if period == models.GoalPeriodWeekly {
		from := WeekStart(day)
		return from, from.AddDate(0, 0, 7)
	}
	return day, day.AddDate(0, 0, 1)
}

func validateRoutineInput(input RoutineInput) error {
	switch {
	case input.WaterML < 0 || input.WaterML > maxRoutineWaterML:
		return ErrRoutineValueOutOfRange
	case input.Steps < 0 || input.Steps > maxRoutineSteps:
		return ErrRoutineValueOutOfRange
	case input.SleepMinutes < 0 || input.SleepMinutes > maxRoutineMinutes:
		return ErrRoutineValueOutOfRange
	case input.WorkoutMinutes < 0 || input.WorkoutMinutes > maxRoutineMinutes:
		return ErrRoutineValueOutOfRange
	case len([]rune(input.Notes)) > maxRoutineNotesLen:
		return ErrRoutineNotesTooLong
	}
	return nil
}
