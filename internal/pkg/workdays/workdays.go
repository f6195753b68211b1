// Package workdays counts business days between calendar dates. It is the
// single date primitive the planning engine prorates with; period length and
// overlap length must always come from the same counter.
package workdays

import "time"

// Midnight strips the time-of-day from t in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Between returns the number of weekdays (Mon-Fri) from start to end
// inclusive. Both bounds are normalized to local midnight first. Returns 0
// when start is after end.
func Between(start, end time.Time) int {
	start = Midnight(start)
	end = Midnight(end)
	if start.After(end) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
