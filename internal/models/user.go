package models

import "time"

const DefaultReminderDaysBefore = 2

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	DisplayName        string    `gorm:"not null;default:''" json:"display_name"`
	Language           string    `gorm:"not null;default:en" json:"language"`
	TelegramChatID     *int64    `json:"telegram_chat_id,omitempty"`
	RemindersEnabled   bool      `gorm:"not null;default:false" json:"reminders_enabled"`
	ReminderDaysBefore int       `gorm:"not null;default:2" json:"reminder_days_before"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}
