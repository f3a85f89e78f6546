package cycle

import (
	"time"

	"github.com/samber/mo"
)

// ResolvePhase classifies reference into a phase of the cycle repetition that
// contains it. It returns None when reference precedes the configured period
// start, and an *InvalidConfigError when the configuration cannot be partitioned.
func ResolvePhase(cfg Config, reference time.Time) (mo.Option[PhaseInfo], error) {
	if err := cfg.Validate(); err != nil {
		return mo.None[PhaseInfo](), err
	}

	daysSinceStart := DaysBetween(cfg.start(), reference) + 1
	if daysSinceStart < 1 {
		return mo.None[PhaseInfo](), nil
	}
	if daysSinceStart > cfg.CycleLength {
		daysSinceStart = ((daysSinceStart - 1) % cfg.CycleLength) + 1
	}

	phase, ok := classifyDay(daysSinceStart, cfg.CycleLength, cfg.MenstrualLength)
	if !ok {
		return mo.None[PhaseInfo](), cfg.invalid("day falls outside every phase window")
	}

	return mo.Some(PhaseInfo{
		Phase:       phase,
		DayInCycle:  daysSinceStart,
		CycleLength: cfg.CycleLength,
	}), nil
}

func classifyDay(day int, cycleLength int, menstrualLength int) (Phase, bool) {
	ovulatoryStart := cycleLength - ovulatoryStartFromEnd
	ovulatoryEnd := cycleLength - ovulatoryEndFromEnd

	switch {
	case day >= 1 && day <= menstrualLength:
		return PhaseMenstrual, true
	case day > menstrualLength && day <= ovulatoryStart-1:
		return PhaseFollicular, true
	case day >= ovulatoryStart && day <= ovulatoryEnd:
		return PhaseOvulatory, true
	case day > ovulatoryEnd && day <= cycleLength:
		return PhaseLuteal, true
	default:
		return "", false
	}
}

func ProjectCycleStart(cfg Config, reference time.Time) (time.Time, int, bool) {
	if cfg.Validate() != nil {
		return time.Time{}, 0, false
	}
	elapsedDays := DaysBetween(cfg.start(), reference)
	if elapsedDays < 0 {
		return time.Time{}, 0, false
	}

	cyclesElapsed := elapsedDays / cfg.CycleLength
	projectedStart := cfg.start().AddDate(0, 0, cyclesElapsed*cfg.CycleLength)
	return projectedStart, (elapsedDays % cfg.CycleLength) + 1, true
}
