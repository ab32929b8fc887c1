// Package isoweek resolves ISO-8601 year-week identifiers to calendar dates.
package isoweek

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidFormat reports a week identifier that cannot be parsed or whose
// week number does not exist in its year.
var ErrInvalidFormat = errors.New("isoweek: invalid week identifier")

// External format: four-digit year, literal W, two-digit week.
var idRe = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// Range is the inclusive Monday–Sunday date pair of one ISO week. Both dates
// are midnight UTC.
type Range struct {
	Monday time.Time
	Sunday time.Time
}

// Dates returns every date of the range in chronological order.
func (r Range) Dates() []time.Time {
	out := make([]time.Time, 0, 7)
	for d := r.Monday; !d.After(r.Sunday); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Resolve converts an identifier of the form "YYYY-Www" (e.g. "2026-W02")
// into the calendar range of that ISO week. Week 1 is the week containing
// the year's first Thursday.
func Resolve(id string) (Range, error) {
	m := idRe.FindStringSubmatch(id)
	if m == nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidFormat, id)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > weeksInYear(year) {
		return Range{}, fmt.Errorf("%w: year %d has no week %d", ErrInvalidFormat, year, week)
	}

	monday := week1Monday(year).AddDate(0, 0, (week-1)*7)
	return Range{Monday: monday, Sunday: monday.AddDate(0, 0, 6)}, nil
}

// week1Monday returns the Monday of ISO week 1: January 4 always falls in
// week 1, so step back to its Monday.
func week1Monday(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	back := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -back)
}

// weeksInYear returns 52 or 53: December 28 always falls in the last ISO
// week of its year.
func weeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
