package timeutil

import "time"

// Calendar-day arithmetic in the deployment time zone. All date-boundary
// comparisons in the timeclock domain go through these helpers so the zone is
// applied consistently.

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the half-open interval [from, to) covering t's calendar
// day in loc.
func DayBounds(t time.Time, loc *time.Location) (from, to time.Time) {
	from = DayStart(t, loc)
	return from, from.AddDate(0, 0, 1)
}

// MonthBounds returns the half-open interval [from, to) covering t's calendar
// month in loc.
func MonthBounds(t time.Time, loc *time.Location) (from, to time.Time) {
	t = t.In(loc)
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayStart(a, loc).Equal(DayStart(b, loc))
}

// DaysOfMonthUpTo returns the midnight of every calendar day of month's
// month, from the first through the earlier of the month's last day and now's
// day. A month entirely in the future yields no days.
func DaysOfMonthUpTo(month, now time.Time, loc *time.Location) []time.Time {
	first, next := MonthBounds(month, loc)
	today := DayStart(now, loc)

	last := next.AddDate(0, 0, -1)
	if today.Before(last) {
		last = today
	}

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
