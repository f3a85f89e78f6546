package db

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
)

type FoodEntryRepository struct {
	database *gorm.DB
}

func NewFoodEntryRepository(database *gorm.DB) *FoodEntryRepository {
	return &FoodEntryRepository{database: database}
}

func (repo *FoodEntryRepository) FindByUserAndID(userID uint, entryID uint) (models.FoodEntry, bool, error) {
	entry := models.FoodEntry{}
	result := repo.database.Where("user_id = ? AND id = ?", userID, entryID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.FoodEntry{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

// ListByUserRange returns entries with from <= date < to.
func (repo *FoodEntryRepository) ListByUserRange(userID uint, from time.Time, to time.Time) ([]models.FoodEntry, error) {
	entries := make([]models.FoodEntry, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *FoodEntryRepository) SumCaloriesByUserRange(userID uint, from time.Time, to time.Time) (float64, error) {
	var total float64
	if err := repo.database.Model(&models.FoodEntry{}).
		Select("COALESCE(SUM(calories * servings), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *FoodEntryRepository) Create(entry *models.FoodEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *FoodEntryRepository) Save(entry *models.FoodEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *FoodEntryRepository) DeleteByUserAndID(userID uint, entryID uint) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, entryID).Delete(&models.FoodEntry{})
	return result.RowsAffected > 0, result.Error
}
