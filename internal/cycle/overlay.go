package cycle

import "time"

type OverlayDay struct {
	Date              time.Time `json:"-"`
	DateString        string    `json:"date"`
	Day               int       `json:"day"`
	InMonth           bool      `json:"in_month"`
	IsToday           bool      `json:"is_today"`
	Phase             Phase     `json:"phase,omitempty"`
	DayInCycle        int       `json:"day_in_cycle,omitempty"`
	IsPeriod          bool      `json:"is_period"`
	IsPredictedPeriod bool      `json:"is_predicted_period"`
	IsFertile         bool      `json:"is_fertile"`
	IsOvulation       bool      `json:"is_ovulation"`
}

// Days of the configured cycle are period days, later repetitions predicted ones.
func BuildMonthOverlay(cfg Config, month time.Time, today time.Time) ([]OverlayDay, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))
	firstStart := cfg.start()

	days := make([]OverlayDay, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		entry := OverlayDay{
			Date:       day,
			DateString: day.Format("2006-01-02"),
			Day:        day.Day(),
			InMonth:    day.Month() == monthStart.Month(),
			IsToday:    DaysBetween(day, today) == 0,
		}

		cycleStart, dayInCycle, ok := ProjectCycleStart(cfg, day)
		if ok {
			phase, _ := classifyDay(dayInCycle, cfg.CycleLength, cfg.MenstrualLength)
			entry.Phase = phase
			entry.DayInCycle = dayInCycle

			if phase == PhaseMenstrual {
				if DaysBetween(firstStart, cycleStart) == 0 {
					entry.IsPeriod = true
				} else {
					entry.IsPredictedPeriod = true
				}
			}

			predicted := predictFrom(cycleStart, cfg.CycleLength)
			entry.IsOvulation = DaysBetween(predicted.Ovulation, day) == 0
			entry.IsFertile = !entry.IsOvulation &&
				DaysBetween(predicted.FertileWindowStart, day) >= 0 &&
				DaysBetween(day, predicted.FertileWindowEnd) >= 0
		}

		days = append(days, entry)
	}

	return days, nil
}
