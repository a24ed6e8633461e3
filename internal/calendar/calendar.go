// Package calendar builds the browsable date range and the day boundaries
// used when matching tasks to a selected date.
package calendar

import "time"

// NextMonthDays is how many days of the following month are browsable.
const NextMonthDays = 15

// VisibleDates returns every day of ref's month followed by the first
// NextMonthDays days of the next month, at midnight in ref's location.
func VisibleDates(ref time.Time) []time.Time {
	year, month, _ := ref.Date()
	loc := ref.Location()
	n := DaysIn(year, month, loc)

	dates := make([]time.Time, 0, n+NextMonthDays)
	for d := 1; d <= n; d++ {
		dates = append(dates, time.Date(year, month, d, 0, 0, 0, 0, loc))
	}
	// time.Date normalizes month 13 to January of the next year.
	for d := 1; d <= NextMonthDays; d++ {
		dates = append(dates, time.Date(year, month+1, d, 0, 0, 0, 0, loc))
	}
	return dates
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	day := StartOfDay(a.In(b.Location()))
	start, end := StartOfDay(b), EndOfDay(b)
	return !day.Before(start) && !day.After(end)
}

// Range caches VisibleDates for one calendar month.
type Range struct {
	year  int
	month time.Month
	loc   *time.Location
	dates []time.Time
}

// Dates returns the cached sequence, recomputing it only when ref falls in
// a different month (or location) than the previous call.
func (r *Range) Dates(ref time.Time) []time.Time {
	year, month, _ := ref.Date()
	if r.dates == nil || r.year != year || r.month != month || r.loc != ref.Location() {
		r.year, r.month, r.loc = year, month, ref.Location()
		r.dates = VisibleDates(ref)
	}
	out := make([]time.Time, len(r.dates))
	copy(out, r.dates)
	return out
}

// Index returns the position of day in dates, or -1.
func Index(dates []time.Time, day time.Time) int {
	for i, d := range dates {
		if SameDay(day, d) {
			return i
		}
	}
	return -1
}
