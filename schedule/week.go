package schedule

import (
	"time"
)

// CurrentWeek returns the 1-based league week number for the current date,
// counted in whole days from the season start. Dates before the season start
// yield week <= 0, which simply matches no scheduled games.
func CurrentWeek(seasonStart, current time.Time) int {
	days := daysBetween(seasonStart, current)
	week := days/7 + 1
	// Integer division truncates toward zero; week counting floors.
	if days < 0 && days%7 != 0 {
		week--
	}
	return week
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time-of-day and time zone of either value.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
