package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

var (
	ErrCycleSettingsNotFound     = errors.New("cycle settings not found")
	ErrCycleLengthOutOfRange     = errors.New("cycle length out of range")
	ErrMenstrualLengthOutOfRange = errors.New("menstrual length out of range")
	ErrCycleStartDateInvalid     = errors.New("cycle start date invalid")
)

type CycleSettingsInput struct {
	StartDate       string
	CycleLength     int
	MenstrualLength int
}

type CycleSettingsUpdate struct {
	StartDate       time.Time
	CycleLength     int
	MenstrualLength int
}

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func IsValidMenstrualLength(value int) bool {
	return value >= models.MinMenstrualLength && value <= models.MaxMenstrualLength
}

func CycleStartDateBounds(now time.Time, location *time.Location) (time.Time, time.Time) {
	today := StorageDay(now, location)
	return today.AddDate(-1, 0, 0), today
}

func ValidateCycleSettings(input CycleSettingsInput, now time.Time, location *time.Location) (CycleSettingsUpdate, error) {
	if !IsValidCycleLength(input.CycleLength) {
		return CycleSettingsUpdate{}, ErrCycleLengthOutOfRange
	}
	if !IsValidMenstrualLength(input.MenstrualLength) {
		return CycleSettingsUpdate{}, ErrMenstrualLengthOutOfRange
	}

	startDate, err := ParseDay(input.StartDate)
	if err != nil {
		return CycleSettingsUpdate{}, ErrCycleStartDateInvalid
	}
	minDate, today := CycleStartDateBounds(now, location)
	if startDate.Before(minDate) || startDate.After(today) {
		return CycleSettingsUpdate{}, ErrCycleStartDateInvalid
	}

	return CycleSettingsUpdate{
		StartDate:       startDate,
		CycleLength:     input.CycleLength,
		MenstrualLength: input.MenstrualLength,
	}, nil
}
