package cycle

import "time"

// PredictDates projects the next period start, the ovulation proxy day and the
// fertile window from the configured period start. MenstrualLength is validated
// but does not shift any of the predicted dates: ovulation is anchored to the
// cycle length alone.
func PredictDates(cfg Config) (PredictedDates, error) {
	if err := cfg.Validate(); err != nil {
		return PredictedDates{}, err
	}
	return predictFrom(cfg.start(), cfg.CycleLength), nil
}

func predictFrom(cycleStart time.Time, cycleLength int) PredictedDates {
	return PredictedDates{
		NextPeriodStart:    cycleStart.AddDate(0, 0, cycleLength),
		Ovulation:          cycleStart.AddDate(0, 0, cycleLength-ovulatoryStartFromEnd),
		FertileWindowStart: cycleStart.AddDate(0, 0, cycleLength-fertileStartFromEnd),
		FertileWindowEnd:   cycleStart.AddDate(0, 0, cycleLength-fertileEndFromEnd),
	}
}

// UpcomingPeriodStart returns the first predicted period start on or after
// reference. A reference before the configured start yields that start.
func UpcomingPeriodStart(cfg Config, reference time.Time) (time.Time, error) {
	if err := cfg.Validate(); err != nil {
		return time.Time{}, err
	}

	cycleStart, dayInCycle, ok := ProjectCycleStart(cfg, reference)
	if !ok {
		return cfg.start(), nil
	}
	if dayInCycle == 1 {
		return cycleStart, nil
	}
	return cycleStart.AddDate(0, 0, cfg.CycleLength), nil
}

func UpcomingCycles(cfg Config, reference time.Time, count int) ([]PredictedCycle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return []PredictedCycle{}, nil
	}

	cycleStart, _, ok := ProjectCycleStart(cfg, reference)
	if !ok {
		cycleStart = cfg.start()
	}

	cycles := make([]PredictedCycle, 0, count)
	for index := 0; index < count; index++ {
		cycles = append(cycles, PredictedCycle{
			Start:          cycleStart,
			MenstrualEnd:   cycleStart.AddDate(0, 0, cfg.MenstrualLength-1),
			PredictedDates: predictFrom(cycleStart, cfg.CycleLength),
		})
		cycleStart = cycleStart.AddDate(0, 0, cfg.CycleLength)
	}
	return cycles, nil
}

type PredictedCycle struct {
	Start        time.Time `json:"start"`
	MenstrualEnd time.Time `json:"menstrual_end"`
	PredictedDates
}
