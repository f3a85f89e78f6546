package calc

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrUnknownFastingProtocol = errors.New("unknown fasting protocol")
	ErrInvalidFastingHours    = errors.New("fasting hours out of range")
	ErrFastingStartRequired   = errors.New("fasting start required")
	ErrFastingStartInFuture   = errors.New("fasting start in the future")
)

const ProtocolCustom = "custom"

var fastingProtocolHours = map[string]int{
	"14:10": 14,
	"16:8":  16,
	"18:6":  18,
	"20:4":  20,
	"omad":  23,
}

const (
	StageFed         = "fed"
	StageEarly       = "early"
	StageFatBurning  = "fat_burning"
	StageKetosis     = "ketosis"
	StageDeepKetosis = "deep_ketosis"
)

type FastingInput struct {
	Protocol    string    `json:"protocol"`
	CustomHours int       `json:"custom_hours"`
	StartedAt   time.Time `json:"started_at"`
}

type FastingStatus struct {
	Protocol         string    `json:"protocol"`
	FastingHours     int       `json:"fasting_hours"`
	EatingHours      int       `json:"eating_hours"`
	StartedAt        time.Time `json:"started_at"`
	EndsAt           time.Time `json:"ends_at"`
	ElapsedMinutes   int       `json:"elapsed_minutes"`
	RemainingMinutes int       `json:"remaining_minutes"`
	ProgressPercent  float64   `json:"progress_percent"`
	Completed        bool      `json:"completed"`
	Stage            string    `json:"stage"`
}

// Fasting reports the progress of a fast that started at input.StartedAt as seen at now.
func Fasting(input FastingInput, now time.Time) (FastingStatus, error) {
	protocol := strings.ToLower(strings.TrimSpace(input.Protocol))
	hours, err := fastingHours(protocol, input.CustomHours)
	if err != nil {
		return FastingStatus{}, err
	}
	if input.StartedAt.IsZero() {
		return FastingStatus{}, ErrFastingStartRequired
	}
	if input.StartedAt.After(now) {
		return FastingStatus{}, ErrFastingStartInFuture
	}

	duration := time.Duration(hours) * time.Hour
	elapsed := now.Sub(input.StartedAt)
	remaining := duration - elapsed
	if remaining < 0 {
		remaining = 0
	}

	progress := math.Min(100, float64(elapsed)/float64(duration)*100)
	eatingHours := 24 - hours
	if eatingHours < 0 {
		eatingHours = 0
	}

	return FastingStatus{
		Protocol:         protocol,
		FastingHours:     hours,
		EatingHours:      eatingHours,
		StartedAt:        input.StartedAt,
		EndsAt:           input.StartedAt.Add(duration),
		ElapsedMinutes:   int(elapsed / time.Minute),
		RemainingMinutes: int(math.Ceil(remaining.Minutes())),
		ProgressPercent:  roundTenth(progress),
		Completed:        elapsed >= duration,
		Stage:            fastingStage(elapsed),
	}, nil
}

func fastingHours(protocol string, customHours int) (int, error) {
	if protocol == ProtocolCustom {
		if customHours < 1 || customHours > 72 {
			return 0, ErrInvalidFastingHours
		}
		return customHours, nil
	}
	hours, ok := fastingProtocolHours[protocol]
	if !ok {
		return 0, ErrUnknownFastingProtocol
	}
	return hours, nil
}

func fastingStage(elapsed time.Duration) string {
	switch {
	case elapsed < 4*time.Hour:
		return StageFed
	case elapsed < 12*time.Hour:
		return StageEarly
	case elapsed < 18*time.Hour:
		return StageFatBurning
	case elapsed < 24*time.Hour:
		return StageKetosis
	default:
		return StageDeepKetosis
	}
}
