package models

import "time"

const (
	GoalMetricWaterML        = "water_ml"
	GoalMetricSteps          = "steps"
	GoalMetricSleepMinutes   = "sleep_minutes"
	GoalMetricWorkoutMinutes = "workout_minutes"
	GoalMetricCalories       = "calories"
)

const (
	GoalPeriodDaily  = "daily"
	GoalPeriodWeekly = "weekly"
)

type Goal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Metric    string    `gorm:"not null" json:"metric"`
	Period    string    `gorm:"not null;default:daily" json:"period"`
	Target    float64   `gorm:"not null" json:"target"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type GoalProgress struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	GoalID      uint       `gorm:"not null;uniqueIndex:uidx_goal_period" json:"goal_id"`
	PeriodStart time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_goal_period" json:"period_start"`
	Value       float64    `gorm:"not null;default:0" json:"value"`
	Achieved    bool       `gorm:"not null;default:false" json:"achieved"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (GoalProgress) TableName() string {
	return "goal_progress"
}
