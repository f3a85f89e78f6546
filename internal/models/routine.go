package models

import "time"

type DailyRoutine struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserID         uint      `gorm:"not null;uniqueIndex:uidx_routine_user_date" json:"-"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:uidx_routine_user_date" json:"date"`
	WaterML        int       `gorm:"not null;default:0" json:"water_ml"`
	Steps          int       `gorm:"not null;default:0" json:"steps"`
	SleepMinutes   int       `gorm:"not null;default:0" json:"sleep_minutes"`
	WorkoutMinutes int       `gorm:"not null;default:0" json:"workout_minutes"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}
