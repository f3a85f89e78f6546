package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalTitleInvalid  = errors.New("goal title invalid")
	ErrGoalMetricInvalid = errors.New("goal metric invalid")
	ErrGoalPeriodInvalid = errors.New("goal period invalid")
	ErrGoalTargetInvalid = errors.New("goal target invalid")
)

const (
	maxGoalTitleLength   = 80
	defaultProgressLimit = 30
)

var goalMetrics = map[string]struct{}{
	models.GoalMetricWaterML:        {},
	models.GoalMetricSteps:          {},
	models.GoalMetricSleepMinutes:   {},
	models.GoalMetricWorkoutMinutes: {},
	models.GoalMetricCalories:       {},
}

type GoalInput struct {
	Title  string
	Metric string
	Period string
	Target float64
}

func (service *RoutineService) Goals(userID uint) ([]models.Goal, error) {
	return service.stores.Goals.ListByUser(userID)
}

func (service *RoutineService) CreateGoal(userID uint, input GoalInput, now time.Time) (models.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len([]rune(title)) > maxGoalTitleLength {
		return models.Goal{}, ErrGoalTitleInvalid
	}
	metric := strings.ToLower(strings.TrimSpace(input.Metric))
	if _, ok := goalMetrics[metric]; !ok {
		return models.Goal{}, ErrGoalMetricInvalid
	}
	period := strings.ToLower(strings.TrimSpace(input.Period))
	if period == "" {
		period = models.GoalPeriodDaily
	}
	if period != models.GoalPeriodDaily && period != models.GoalPeriodWeekly {
		return models.Goal{}, ErrGoalPeriodInvalid
	}
	if input.Target <= 0 {
		return models.Goal{}, ErrGoalTargetInvalid
	}

	goal := models.Goal{
		UserID:    userID,
		Title:     title,
		Metric:    metric,
		Period:    period,
		Target:    input.Target,
		Active:    true,
		CreatedAt: now,
	}
	if err := service.stores.Goals.Create(&goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (service *RoutineService) DeleteGoal(userID uint, goalID uint) error {
	deleted, err := service.stores.Goals.DeleteByUserAndID(userID, goalID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

func (service *RoutineService) GoalProgress(userID uint, goalID uint, limit int) ([]models.GoalProgress, error) {
	if _, found, err := service.stores.Goals.FindByUserAndID(userID, goalID); err != nil {
		return nil, err
	} else if !found {
		return nil, ErrGoalNotFound
	}
	if limit <= 0 || limit > 366 {
		limit = defaultProgressLimit
	}
	return service.stores.Goals.ListProgress(goalID, limit)
}
