package services

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// StorageDay is the UTC-midnight value stored in date columns for the civil
// day that value falls on in location.
func StorageDay(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(dayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

func WeekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
