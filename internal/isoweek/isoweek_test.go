package isoweek

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_KnownWeek(t *testing.T) {
	r, err := Resolve("2026-W02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Monday.Equal(date(2026, time.January, 5)) {
		t.Errorf("Monday = %v, want 2026-01-05", r.Monday)
	}
	if !r.Sunday.Equal(date(2026, time.January, 11)) {
		t.Errorf("Sunday = %v, want 2026-01-11", r.Sunday)
	}
}

func TestResolve_Week1SpansYearBoundary(t *testing.T) {
	// ISO week 1 of 2026 starts in December 2025.
	r, err := Resolve("2026-W01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Monday.Equal(date(2025, time.December, 29)) {
		t.Errorf("Monday = %v, want 2025-12-29", r.Monday)
	}
}

func TestResolve_LongYearHasWeek53(t *testing.T) {
	// 2026 has 53 ISO weeks.
	r, err := Resolve("2026-W53")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Monday.Equal(date(2026, time.December, 28)) {
		t.Errorf("Monday = %v, want 2026-12-28", r.Monday)
	}

	// 2025 has only 52.
	if _, err := Resolve("2025-W53"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("2025-W53: err = %v, want ErrInvalidFormat", err)
	}
}

func TestResolve_InvalidIdentifiers(t *testing.T) {
	cases := []string{
		"2026-W00",
		"2026-W54",
		"2026-w02",
		"2026-W2",
		"26-W02",
		"2026W02",
		"garbage",
		"",
	}
	for _, id := range cases {
		if _, err := Resolve(id); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%q: err = %v, want ErrInvalidFormat", id, err)
		}
	}
}

func TestRange_DatesAreConsecutive(t *testing.T) {
	r, err := Resolve("2026-W02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dates := r.Dates()
	if len(dates) != 7 {
		t.Fatalf("len = %d, want 7", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Errorf("dates[%d] = %v not consecutive after %v", i, dates[i], dates[i-1])
		}
	}
	if dates[0].Weekday() != time.Monday || dates[6].Weekday() != time.Sunday {
		t.Errorf("range runs %v to %v, want Monday to Sunday", dates[0].Weekday(), dates[6].Weekday())
	}
}
