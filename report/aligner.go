package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gameday-weather/datasource"
	"gameday-weather/models"
	"gameday-weather/venues"
)

// noMatchMessage is returned when no forecast entries fall inside the game window
const noMatchMessage = "No matching weather data found for the specified game hours."

// gameWindowHours is the assumed game duration, pre-game through overtime
// buffer. There is no source of truth for actual game length, so overtime
// games can show incomplete coverage.
const gameWindowHours = 4

// eastern is the league's scheduling time zone; all kickoff times are
// published as Eastern wall-clock times.
var eastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

// Aligner matches hourly forecast entries to a game's in-progress hours
// and renders the per-quarter weather block for one game.
type Aligner struct {
	venues  *venues.Registry
	weather datasource.ForecastSource
}

// NewAligner creates an aligner over a venue registry and a forecast source
func NewAligner(registry *venues.Registry, weather datasource.ForecastSource) *Aligner {
	return &Aligner{
		venues:  registry,
		weather: weather,
	}
}

// GameWeather produces the weather block for one game: one line per forecast
// entry whose hour overlaps the game window, or the no-data message when
// nothing overlaps.
func (a *Aligner) GameWeather(ctx context.Context, game models.ScheduledGame) (string, error) {
	kickoff, err := time.ParseInLocation("2006-01-02 15:04", game.Date+" "+game.Kickoff, eastern)
	if err != nil {
		return "", fmt.Errorf("bad kickoff %q %q: %w", game.Date, game.Kickoff, err)
	}

	coords, err := a.venues.Lookup(game.HomeTeam)
	if err != nil {
		return "", err
	}

	series, err := a.weather.FetchForecast(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return "", fmt.Errorf("fetching forecast for %s: %w", game.HomeTeam, err)
	}

	return renderWindow(kickoff, series.Points), nil
}

// renderWindow walks the forecast series in its own order and emits a line
// for every entry whose hour matches one of the game's target hours. Line
// numbering follows series order, not target order.
func renderWindow(kickoff time.Time, points []models.ForecastPoint) string {
	targets := targetHours(kickoff)

	var lines strings.Builder
	idx := 1
	for _, point := range points {
		if !matchesTarget(point.Timestamp, targets) {
			continue
		}

		// All non-Snow condition codes label as rain, sleet and hail included.
		category := "rain"
		if point.Condition == "Snow" {
			category = "snow"
		}

		fahrenheit := (point.TempKelvin-273.15)*9/5 + 32
		precipitationPct := int(point.PrecipProb * 100) // truncated, not rounded

		fmt.Fprintf(&lines, "Q%d: %d°F, %d%% %s, %s\n",
			idx, int(math.Round(fahrenheit)), precipitationPct, category, point.Description)
		idx++
	}

	if lines.Len() == 0 {
		return noMatchMessage
	}
	return lines.String()
}

// targetHours returns the kickoff hour truncated to the minute-zero boundary
// plus the following hours of the game window, all in Eastern time.
func targetHours(kickoff time.Time) []time.Time {
	local := kickoff.In(eastern)
	first := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, eastern)

	targets := make([]time.Time, 0, gameWindowHours)
	for i := 0; i < gameWindowHours; i++ {
		targets = append(targets, first.Add(time.Duration(i)*time.Hour))
	}
	return targets
}

// matchesTarget reports whether the instant, truncated to the top of its
// Eastern-time hour, equals any of the target hours.
func matchesTarget(instant time.Time, targets []time.Time) bool {
	local := instant.In(eastern)
	hour := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, eastern)
	for _, target := range targets {
		if hour.Equal(target) {
			return true
		}
	}
	return false
}
