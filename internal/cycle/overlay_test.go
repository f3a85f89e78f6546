package cycle

import "testing"

func TestBuildMonthOverlayMarksCycleDays(t *testing.T) {
	t.Parallel()

	cfg := Config{LastPeriodStart: mustParseDay(t, "2024-01-01"), CycleLength: 28, MenstrualLength: 5}
	days, err := BuildMonthOverlay(cfg, mustParseDay(t, "2024-01-17"), mustParseDay(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("build overlay: %v", err)
	}

	// January 2024 starts on a Monday and ends on a Wednesday.
	if got := days[0].DateString; got != "2023-12-31" {
		t.Fatalf("expected grid to start on 2023-12-31, got %s", got)
	}
	if got := days[len(days)-1].DateString; got != "2024-02-03" {
		t.Fatalf("expected grid to end on 2024-02-03, got %s", got)
	}

	beforeStart := findOverlayDay(t, days, "2023-12-31")
	if beforeStart.Phase != "" || beforeStart.InMonth {
		t.Fatalf("expected an empty out-of-month day before the start, got %+v", beforeStart)
	}

	first := findOverlayDay(t, days, "2024-01-01")
	if !first.IsPeriod || first.IsPredictedPeriod || first.Phase != PhaseMenstrual {
		t.Fatalf("expected configured period day, got %+v", first)
	}

	today := findOverlayDay(t, days, "2024-01-10")
	if !today.IsToday || today.Phase != PhaseFollicular {
		t.Fatalf("expected follicular today marker, got %+v", today)
	}

	ovulation := findOverlayDay(t, days, "2024-01-15")
	if !ovulation.IsOvulation || ovulation.IsFertile {
		t.Fatalf("expected ovulation day without fertile flag, got %+v", ovulation)
	}
	for _, date := range []string{"2024-01-13", "2024-01-14", "2024-01-16", "2024-01-18"} {
		if day := findOverlayDay(t, days, date); !day.IsFertile {
			t.Fatalf("expected %s inside the fertile window", date)
		}
	}
	if day := findOverlayDay(t, days, "2024-01-19"); day.IsFertile {
		t.Fatal("expected 2024-01-19 outside the fertile window")
	}

	predicted := findOverlayDay(t, days, "2024-01-29")
	if !predicted.IsPredictedPeriod || predicted.IsPeriod || predicted.DayInCycle != 1 {
		t.Fatalf("expected predicted period day 1, got %+v", predicted)
	}
}

func findOverlayDay(t *testing.T, days []OverlayDay, date string) OverlayDay {
	t.Helper()
	for _, day := range days {
		if day.DateString == date {
			return day
		}
	}
	t.Fatalf("overlay day %s not found", date)
	return OverlayDay{}
}
