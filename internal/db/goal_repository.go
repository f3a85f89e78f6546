package db

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) ListByUser(userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) ListActiveByUser(userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.Where("user_id = ? AND active = ?", userID, true).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByUserAndID(userID uint, goalID uint) (models.Goal, bool, error) {
	goal := models.Goal{}
	result := repo.database.Where("user_id = ? AND id = ?", userID, goalID).Limit(1).Find(&goal)
	if result.Error != nil {
		return models.Goal{}, false, result.Error
	}
	return goal, result.RowsAffected > 0, nil
}

func (repo *GoalRepository) Create(goal *models.Goal) error {
	return repo.database.Create(goal).Error
}

func (repo *GoalRepository) DeleteByUserAndID(userID uint, goalID uint) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, goalID).Delete(&models.Goal{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := repo.database.Where("goal_id = ?", goalID).Delete(&models.GoalProgress{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (repo *GoalRepository) FindProgress(goalID uint, periodStart time.Time) (models.GoalProgress, bool, error) {
	progress := models.GoalProgress{}
	result := repo.database.Where("goal_id = ? AND period_start = ?", goalID, periodStart).Limit(1).Find(&progress)
	if result.Error != nil {
		return models.GoalProgress{}, false, result.Error
	}
	return progress, result.RowsAffected > 0, nil
}

func (repo *GoalRepository) UpsertProgress(progress *models.GoalProgress) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "goal_id"}, {Name: "period_start"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "achieved", "achieved_at", "updated_at"}),
	}).Create(progress).Error
}

func (repo *GoalRepository) ListProgress(goalID uint, limit int) ([]models.GoalProgress, error) {
	rows := make([]models.GoalProgress, 0)
	query := repo.database.Where("goal_id = ?", goalID).Order("period_start DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
