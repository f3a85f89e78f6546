package models

import "time"

const (
	DefaultCycleLength     = 28
	DefaultMenstrualLength = 5
	MinCycleLength         = 20
	MaxCycleLength         = 45
	MinMenstrualLength     = 2
	MaxMenstrualLength     = 10
)

type CycleSettings struct {
	ID              uint       `gorm:"primaryKey" json:"-"`
	UserID          uint       `gorm:"not null;uniqueIndex" json:"-"`
	StartDate       time.Time  `gorm:"type:date;not null" json:"start_date"`
	CycleLength     int        `gorm:"not null;default:28" json:"cycle_length"`
	MenstrualLength int        `gorm:"not null;default:5" json:"menstrual_length"`
	LastReminderFor *time.Time `gorm:"type:date" json:"-"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
