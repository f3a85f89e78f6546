package db

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
)

type CycleSettingsRepository struct {
	database *gorm.DB
}

func NewCycleSettingsRepository(database *gorm.DB) *CycleSettingsRepository {
	return &CycleSettingsRepository{database: database}
}

func (repo *CycleSettingsRepository) FindByUser(userID uint) (models.CycleSettings, bool, error) {
	settings := models.CycleSettings{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.CycleSettings{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleSettings{}, false, nil
	}
	return settings, true, nil
}

func (repo *CycleSettingsRepository) Save(settings *models.CycleSettings) error {
	return repo.database.Save(settings).Error
}

func (repo *CycleSettingsRepository) DeleteByUser(userID uint) (bool, error) {
	result := repo.database.Where("user_id = ?", userID).Delete(&models.CycleSettings{})
	return result.RowsAffected > 0, result.Error
}

func (repo *CycleSettingsRepository) MarkReminded(userID uint, periodStart time.Time) error {
	return repo.database.Model(&models.CycleSettings{}).
		Where("user_id = ?", userID).
		Update("last_reminder_for", periodStart).Error
}
