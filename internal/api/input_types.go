package api

import "time"

type registerInput struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"display_name" form:"display_name"`
	Language    string `json:"language" form:"language"`
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type notificationsInput struct {
	TelegramChatID     *int64 `json:"telegram_chat_id"`
	RemindersEnabled   bool   `json:"reminders_enabled"`
	ReminderDaysBefore int    `json:"reminder_days_before"`
	Language           string `json:"language"`
}

type cycleSettingsInput struct {
	StartDate       string `json:"start_date"`
	CycleLength     int    `json:"cycle_length"`
	MenstrualLength int    `json:"menstrual_length"`
}

type foodEntryInput struct {
	Date     string  `json:"date"`
	Meal     string  `json:"meal"`
	Name     string  `json:"name"`
	Servings float64 `json:"servings"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
}

type routineInput struct {
	WaterML        int    `json:"water_ml"`
	Steps          int    `json:"steps"`
	SleepMinutes   int    `json:"sleep_minutes"`
	WorkoutMinutes int    `json:"workout_minutes"`
	Notes          string `json:"notes"`
}

type goalInput struct {
	Title  string  `json:"title"`
	Metric string  `json:"metric"`
	Period string  `json:"period"`
	Target float64 `json:"target"`
}

type fastingInput struct {
	Protocol    string     `json:"protocol"`
	CustomHours int        `json:"custom_hours"`
	StartedAt   *time.Time `json:"started_at"`
}
