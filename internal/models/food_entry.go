package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type FoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_food_user_date" json:"-"`
	Date      time.Time `gorm:"type:date;not null;index:idx_food_user_date" json:"date"`
	Meal      string    `gorm:"not null" json:"meal"`
	Name      string    `gorm:"not null" json:"name"`
	Servings  float64   `gorm:"not null;default:1" json:"servings"`
	Calories  float64   `gorm:"not null;default:0" json:"calories"`
	ProteinG  float64   `gorm:"not null;default:0" json:"protein_g"`
	CarbsG    float64   `gorm:"not null;default:0" json:"carbs_g"`
	FatG      float64   `gorm:"not null;default:0" json:"fat_g"`
	FiberG    float64   `gorm:"not null;default:0" json:"fiber_g"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
