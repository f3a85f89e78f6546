package cycle

import (
	"errors"
	"testing"
	"time"
)

func TestResolvePhaseScenario(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cfg := Config{LastPeriodStart: start, CycleLength: 28, MenstrualLength: 5}

	cases := []struct {
		day  int
		want Phase
	}{
		{day: 1, want: PhaseMenstrual},
		{day: 5, want: PhaseMenstrual},
		{day: 6, want: PhaseFollicular},
		{day: 13, want: PhaseFollicular},
		{day: 14, want: PhaseOvulatory},
		{day: 16, want: PhaseOvulatory},
		{day: 17, want: PhaseLuteal},
		{day: 28, want: PhaseLuteal},
	}

	for _, testCase := range cases {
		got := mustResolve(t, cfg, start.AddDate(0, 0, testCase.day-1))
		if got.Phase != testCase.want {
			t.Fatalf("day %d: expected phase %s, got %s", testCase.day, testCase.want, got.Phase)
		}
		if got.DayInCycle != testCase.day {
			t.Fatalf("day %d: expected day in cycle %d, got %d", testCase.day, testCase.day, got.DayInCycle)
		}
		if got.CycleLength != 28 {
			t.Fatalf("day %d: expected echoed cycle length 28, got %d", testCase.day, got.CycleLength)
		}
	}
}

func TestResolvePhaseWrapsModuloCycleLength(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cfg := Config{LastPeriodStart: start, CycleLength: 28, MenstrualLength: 5}

	wrapped := mustResolve(t, cfg, start.AddDate(0, 0, 30))
	direct := mustResolve(t, cfg, start.AddDate(0, 0, 2))
	if wrapped != direct {
		t.Fatalf("expected wrapped result %+v to equal %+v", wrapped, direct)
	}

	lastDay := mustResolve(t, cfg, start.AddDate(0, 0, 27))
	if lastDay.DayInCycle != 28 {
		t.Fatalf("expected day 28 before wrapping, got %d", lastDay.DayInCycle)
	}
	nextCycle := mustResolve(t, cfg, start.AddDate(0, 0, 28))
	if nextCycle.DayInCycle != 1 || nextCycle.Phase != PhaseMenstrual {
		t.Fatalf("expected next cycle to restart at menstrual day 1, got %+v", nextCycle)
	}
}

func TestResolvePhaseBeforeStartIsNone(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cfg := Config{LastPeriodStart: start, CycleLength: 28, MenstrualLength: 5}

	result, err := ResolvePhase(cfg, start.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("expected no error before cycle start, got %v", err)
	}
	if result.IsPresent() {
		t.Fatalf("expected no phase before cycle start, got %+v", result.MustGet())
	}
}

func TestResolvePhaseIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	start := time.Date(2024, time.March, 1, 22, 15, 0, 0, location)
	cfg := Config{LastPeriodStart: start, CycleLength: 28, MenstrualLength: 5}

	reference := time.Date(2024, time.March, 15, 0, 30, 0, 0, location)
	got := mustResolve(t, cfg, reference)
	if got.DayInCycle != 15 {
		t.Fatalf("expected day 15 across the DST switch, got %d", got.DayInCycle)
	}

	sameDay := mustResolve(t, cfg, time.Date(2024, time.March, 1, 0, 1, 0, 0, location))
	if sameDay.DayInCycle != 1 {
		t.Fatalf("expected the start date itself to be day 1, got %d", sameDay.DayInCycle)
	}
}

func TestResolvePhasePartitionsEveryValidCycle(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2025-06-10")
	order := map[Phase]int{PhaseMenstrual: 0, PhaseFollicular: 1, PhaseOvulatory: 2, PhaseLuteal: 3}

	for cycleLength := 4; cycleLength <= 60; cycleLength++ {
		for menstrualLength := 1; menstrualLength+2 < cycleLength; menstrualLength++ {
			cfg := Config{LastPeriodStart: start, CycleLength: cycleLength, MenstrualLength: menstrualLength}
			previous := -1
			for day := 1; day <= cycleLength; day++ {
				got := mustResolve(t, cfg, start.AddDate(0, 0, day-1))
				rank, known := order[got.Phase]
				if !known {
					t.Fatalf("cycle %d/%d day %d: unknown phase %q", cycleLength, menstrualLength, day, got.Phase)
				}
				if rank < previous {
					t.Fatalf("cycle %d/%d day %d: phase %s goes backwards", cycleLength, menstrualLength, day, got.Phase)
				}
				if day <= menstrualLength && got.Phase != PhaseMenstrual {
					t.Fatalf("cycle %d/%d day %d: expected menstrual, got %s", cycleLength, menstrualLength, day, got.Phase)
				}
				previous = rank
			}
			if previous != order[PhaseLuteal] {
				t.Fatalf("cycle %d/%d: expected the last day to be luteal", cycleLength, menstrualLength)
			}
		}
	}
}

func TestResolvePhaseRejectsDegenerateConfig(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cases := []struct {
		name            string
		cycleLength     int
		menstrualLength int
	}{
		{name: "zero cycle", cycleLength: 0, menstrualLength: 5},
		{name: "negative menstrual", cycleLength: 28, menstrualLength: -1},
		{name: "menstrual fills cycle", cycleLength: 7, menstrualLength: 5},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := Config{LastPeriodStart: start, CycleLength: testCase.cycleLength, MenstrualLength: testCase.menstrualLength}
			result, err := ResolvePhase(cfg, start.AddDate(0, 0, 3))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var invalid *InvalidConfigError
			if !errors.As(err, &invalid) || invalid.CycleLength != testCase.cycleLength {
				t.Fatalf("expected *InvalidConfigError carrying cycle length %d, got %v", testCase.cycleLength, err)
			}
			if result.IsPresent() {
				t.Fatalf("expected no phase for invalid config")
			}
		})
	}
}

func TestResolvePhaseIsDeterministic(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cfg := Config{LastPeriodStart: start, CycleLength: 31, MenstrualLength: 6}
	reference := mustParseDay(t, "2024-05-17")

	first := mustResolve(t, cfg, reference)
	second := mustResolve(t, cfg, reference)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestProjectCycleStart(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cfg := Config{LastPeriodStart: start, CycleLength: 28, MenstrualLength: 5}

	projected, day, ok := ProjectCycleStart(cfg, mustParseDay(t, "2024-03-01"))
	if !ok {
		t.Fatal("expected projection to succeed")
	}
	if got := projected.Format("2006-01-02"); got != "2024-02-26" {
		t.Fatalf("expected projected start 2024-02-26, got %s", got)
	}
	if day != 5 {
		t.Fatalf("expected projected day 5, got %d", day)
	}

	if _, _, ok := ProjectCycleStart(cfg, mustParseDay(t, "2023-12-31")); ok {
		t.Fatal("expected projection before start to fail")
	}
}

func mustResolve(t *testing.T, cfg Config, reference time.Time) PhaseInfo {
	t.Helper()

	result, err := ResolvePhase(cfg, reference)
	if err != nil {
		t.Fatalf("resolve phase for %s: %v", reference.Format("2006-01-02"), err)
	}
	info, ok := result.Get()
	if !ok {
		t.Fatalf("expected a phase for %s", reference.Format("2006-01-02"))
	}
	return info
}

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()

	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func TestResolvePhaseFarFromStart(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	cfg := Config{LastPeriodStart: start, CycleLength: 28, MenstrualLength: 5}
	reference := mustParseDay(t, "2400-01-01")

	if days := DaysBetween(start, reference); days != 137331 {
		t.Fatalf("expected 137331 days, got %d", days)
	}
	if days := DaysBetween(reference, start); days != -137331 {
		t.Fatalf("expected -137331 days backwards, got %d", days)
	}

	got := mustResolve(t, cfg, reference)
	if got.Phase != PhaseLuteal || got.DayInCycle != 20 {
		t.Fatalf("expected luteal day 20, got %+v", got)
	}

	projected, day, ok := ProjectCycleStart(cfg, reference)
	if !ok || day != 20 {
		t.Fatalf("expected projected day 20, got %d (ok=%v)", day, ok)
	}
	if want := reference.AddDate(0, 0, -19); !projected.Equal(want) {
		t.Fatalf("expected projected start %s, got %s", want, projected)
	}
}
