// Package cycle resolves menstrual cycle phases and predicts upcoming cycle dates
// from a stored cycle configuration. Every function is pure: callers pass the
// reference date explicitly and all dates are compared as calendar days.
package cycle

import (
	"errors"
	"fmt"
	"time"
)

type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
)

// Offsets counted back from the end of the cycle. The ovulatory window is anchored
// to the cycle end only and never moves with the menstrual length.
const (
	ovulatoryStartFromEnd   = 14
	ovulatoryEndFromEnd     = 12
	fertileStartFromEnd     = 16
	fertileEndFromEnd       = 11
	minimumNonMenstrualDays = 2
)

const secondsPerDay = 24 * 60 * 60

var ErrInvalidConfig = errors.New("invalid cycle configuration")

type Config struct {
	LastPeriodStart time.Time
	CycleLength     int
	MenstrualLength int
}

type PhaseInfo struct {
	Phase       Phase `json:"phase"`
	DayInCycle  int   `json:"day_in_cycle"`
	CycleLength int   `json:"cycle_length"`
}

type PredictedDates struct {
	NextPeriodStart    time.Time `json:"next_period_start"`
	Ovulation          time.Time `json:"ovulation_date"`
	FertileWindowStart time.Time `json:"fertile_window_start"`
	FertileWindowEnd   time.Time `json:"fertile_window_end"`
}

type InvalidConfigError struct {
	CycleLength     int
	MenstrualLength int
	Reason          string
}

func (err *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid cycle configuration (cycle %d, menstrual %d): %s", err.CycleLength, err.MenstrualLength, err.Reason)
}

func (err *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (cfg Config) Validate() error {
	switch {
	case cfg.LastPeriodStart.IsZero():
		return cfg.invalid("last period start is not set")
	case cfg.CycleLength <= 0:
		return cfg.invalid("cycle length must be positive")
	case cfg.MenstrualLength <= 0:
		return cfg.invalid("menstrual length must be positive")
	case cfg.CycleLength <= cfg.MenstrualLength+minimumNonMenstrualDays:
		return cfg.invalid("cycle length must exceed menstrual length by more than two days")
	}
	return nil
}

func (cfg Config) invalid(reason string) error {
	return &InvalidConfigError{
		CycleLength:     cfg.CycleLength,
		MenstrualLength: cfg.MenstrualLength,
		Reason:          reason,
	}
}

func (cfg Config) start() time.Time {
	return DateOnly(cfg.LastPeriodStart)
}

func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

// DaysBetween counts calendar days on Unix seconds, so DST offsets and spans
// beyond time.Duration's range do not skew it.
func DaysBetween(from time.Time, to time.Time) int {
	return int((civilUTC(to).Unix() - civilUTC(from).Unix()) / secondsPerDay)
}

func civilUTC(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
