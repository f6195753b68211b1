package workdays

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		// 2025-01-06 is a Monday
		{"monday to friday", date(2025, time.January, 6), date(2025, time.January, 10), 5},
		{"saturday to sunday", date(2025, time.January, 11), date(2025, time.January, 12), 0},
		{"single weekday", date(2025, time.January, 8), date(2025, time.January, 8), 1},
		{"single saturday", date(2025, time.January, 11), date(2025, time.January, 11), 0},
		{"start after end", date(2025, time.January, 10), date(2025, time.January, 6), 0},
		{"full week", date(2025, time.January, 6), date(2025, time.January, 12), 5},
		{"across month boundary", date(2025, time.January, 30), date(2025, time.February, 4), 4},
		{"across year boundary", date(2024, time.December, 30), date(2025, time.January, 3), 5},
		// February 2024 has 29 days, 2024-02-29 is a Thursday
		{"leap day counted", date(2024, time.February, 26), date(2024, time.March, 1), 5},
		{"full january 2025", date(2025, time.January, 1), date(2025, time.January, 31), 23},
	}

	for _, c := range cases {
		got := Between(c.start, c.end)
		if got != c.want {
			t.Errorf("%s: Between(%s, %s) = %d, want %d",
				c.name, c.start.Format("2006-01-02"), c.end.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestBetweenIgnoresTimeOfDay(t *testing.T) {
	// 23:59 on the end date must still include that day.
	start := time.Date(2025, time.January, 6, 23, 59, 0, 0, time.Local)
	end := time.Date(2025, time.January, 10, 0, 1, 0, 0, time.Local)
	if got := Between(start, end); got != 5 {
		t.Errorf("Between with time-of-day = %d, want 5", got)
	}
}
