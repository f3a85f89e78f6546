package db

import (
	"fmt"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoutineRepository struct {
	database *gorm.DB
}

func NewRoutineRepository(database *gorm.DB) *RoutineRepository {
	return &RoutineRepository{database: database}
}

func (repo *RoutineRepository) FindByUserAndDate(userID uint, day time.Time) (models.DailyRoutine, bool, error) {
	routine := models.DailyRoutine{}
	result := repo.database.Where("user_id = ? AND date = ?", userID, day).Limit(1).Find(&routine)
	if result.Error != nil {
		return models.DailyRoutine{}, false, result.Error
	}
	return routine, result.RowsAffected > 0, nil
}

// Upsert inserts the routine or overwrites the metrics of the row stored for
// the same user and date.
func (repo *RoutineRepository) Upsert(routine *models.DailyRoutine) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"water_ml", "steps", "sleep_minutes", "workout_minutes", "notes", "updated_at"}),
	}).Create(routine).Error
}

var routineMetricColumns = map[string]struct{}{
	"water_ml":        {},
	"steps":           {},
	"sleep_minutes":   {},
	"workout_minutes": {},
}

// SumMetricByUserRange sums one routine column over from <= date < to.
func (repo *RoutineRepository) SumMetricByUserRange(userID uint, column string, from time.Time, to time.Time) (float64, error) {
	if _, ok := routineMetricColumns[column]; !ok {
		return 0, fmt.Errorf("unknown routine metric %q", column)
	}
	var total float64
	if err := repo.database.Model(&models.DailyRoutine{}).
		Select("COALESCE(SUM("+column+"), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
