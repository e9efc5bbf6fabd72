package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gameday-weather/models"
	"gameday-weather/venues"
)

type fakeForecastSource struct {
	series  models.ForecastSeries
	err     error
	failLat float64 // when non-zero, fetches for this latitude fail
}

func (f *fakeForecastSource) Name() string { return "fake" }

func (f *fakeForecastSource) FetchForecast(ctx context.Context, lat, lon float64) (models.ForecastSeries, error) {
	if f.err != nil {
		return models.ForecastSeries{}, f.err
	}
	if f.failLat != 0 && lat == f.failLat {
		return models.ForecastSeries{}, errors.New("provider outage")
	}
	return f.series, nil
}

func easternTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, eastern)
}

func point(ts time.Time, condition string, kelvin, pop float64, description string) models.ForecastPoint {
	return models.ForecastPoint{
		Timestamp:   ts,
		Condition:   condition,
		TempKelvin:  kelvin,
		PrecipProb:  pop,
		Description: description,
	}
}

func thursdayGame() models.ScheduledGame {
	return models.ScheduledGame{HomeTeam: "KC", AwayTeam: "BAL", Date: "2024-09-05", Kickoff: "20:15"}
}

func TestGameWindowAlignment(t *testing.T) {
	// Kickoff 20:15 Eastern: target hours are 20:00 through 23:00. The
	// kickoff minute must not shift the window.
	series := models.ForecastSeries{Points: []models.ForecastPoint{
		point(easternTime(2024, 9, 5, 19, 50), "Clouds", 290, 0, "before the window"),
		point(easternTime(2024, 9, 5, 20, 0), "Clouds", 290, 0, "kickoff hour"),
		point(easternTime(2024, 9, 5, 21, 32), "Clouds", 290, 0, "truncates into the window"),
		point(easternTime(2024, 9, 5, 23, 0), "Clouds", 290, 0, "last window hour"),
		point(easternTime(2024, 9, 6, 0, 10), "Clouds", 290, 0, "after the window"),
	}}

	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{series: series})
	block, err := aligner.GameWeather(context.Background(), thursdayGame())
	if err != nil {
		t.Fatalf("GameWeather failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), block)
	}
	for i, want := range []string{"kickoff hour", "truncates into the window", "last window hour"} {
		if !strings.HasPrefix(lines[i], fmt.Sprintf("Q%d:", i+1)) {
			t.Errorf("line %d numbering wrong: %q", i, lines[i])
		}
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want description %q", i, lines[i], want)
		}
	}
}

func TestFahrenheitConversionIsExact(t *testing.T) {
	series := models.ForecastSeries{Points: []models.ForecastPoint{
		point(easternTime(2024, 9, 5, 20, 0), "Clouds", 273.15, 0, "freezing"),
		point(easternTime(2024, 9, 5, 21, 0), "Clouds", 373.15, 0, "boiling"),
	}}

	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{series: series})
	block, err := aligner.GameWeather(context.Background(), thursdayGame())
	if err != nil {
		t.Fatalf("GameWeather failed: %v", err)
	}

	if !strings.Contains(block, "Q1: 32°F") {
		t.Errorf("273.15K should render as 32°F: %q", block)
	}
	if !strings.Contains(block, "Q2: 212°F") {
		t.Errorf("373.15K should render as 212°F: %q", block)
	}
}

func TestPrecipitationPercentTruncates(t *testing.T) {
	series := models.ForecastSeries{Points: []models.ForecastPoint{
		point(easternTime(2024, 9, 5, 20, 0), "Rain", 290, 0.789, "steady rain"),
	}}

	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{series: series})
	block, err := aligner.GameWeather(context.Background(), thursdayGame())
	if err != nil {
		t.Fatalf("GameWeather failed: %v", err)
	}

	if !strings.Contains(block, "78%") {
		t.Errorf("pop 0.789 should truncate to 78%%, got %q", block)
	}
	if strings.Contains(block, "79%") {
		t.Errorf("pop 0.789 must not round to 79%%: %q", block)
	}
}

func TestSnowCategoryRequiresExactCondition(t *testing.T) {
	cases := []struct {
		condition string
		category  string
	}{
		{"Snow", "snow"},
		{"snow", "rain"},
		{"Sleet", "rain"},
		{"Hail", "rain"},
		{"Thunderstorm", "rain"},
	}

	for _, tc := range cases {
		series := models.ForecastSeries{Points: []models.ForecastPoint{
			point(easternTime(2024, 9, 5, 20, 0), tc.condition, 270, 0.5, "wintry mix"),
		}}
		aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{series: series})
		block, err := aligner.GameWeather(context.Background(), thursdayGame())
		if err != nil {
			t.Fatalf("GameWeather failed for %q: %v", tc.condition, err)
		}
		if !strings.Contains(block, "% "+tc.category+",") {
			t.Errorf("condition %q: expected category %q in %q", tc.condition, tc.category, block)
		}
	}
}

func TestNoMatchReturnsSentinel(t *testing.T) {
	series := models.ForecastSeries{Points: []models.ForecastPoint{
		point(easternTime(2024, 9, 6, 9, 0), "Rain", 290, 0.4, "next morning"),
	}}

	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{series: series})
	block, err := aligner.GameWeather(context.Background(), thursdayGame())
	if err != nil {
		t.Fatalf("GameWeather failed: %v", err)
	}

	if block != "No matching weather data found for the specified game hours." {
		t.Errorf("unexpected sentinel: %q", block)
	}
}

func TestLineNumberingFollowsSeriesOrder(t *testing.T) {
	// Out-of-order series: numbering tracks the series, not the clock.
	series := models.ForecastSeries{Points: []models.ForecastPoint{
		point(easternTime(2024, 9, 5, 22, 0), "Clouds", 290, 0, "late entry"),
		point(easternTime(2024, 9, 5, 20, 0), "Clouds", 290, 0, "early entry"),
	}}

	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{series: series})
	block, err := aligner.GameWeather(context.Background(), thursdayGame())
	if err != nil {
		t.Fatalf("GameWeather failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", block)
	}
	if !strings.Contains(lines[0], "late entry") || !strings.HasPrefix(lines[0], "Q1:") {
		t.Errorf("Q1 should be the first series entry: %q", lines[0])
	}
	if !strings.Contains(lines[1], "early entry") || !strings.HasPrefix(lines[1], "Q2:") {
		t.Errorf("Q2 should be the second series entry: %q", lines[1])
	}
}

func TestUnknownVenueFails(t *testing.T) {
	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{})
	game := models.ScheduledGame{HomeTeam: "XXX", AwayTeam: "BAL", Date: "2024-09-05", Kickoff: "20:15"}

	if _, err := aligner.GameWeather(context.Background(), game); err == nil {
		t.Fatal("expected error for unknown venue")
	}
}

func TestBadKickoffFails(t *testing.T) {
	aligner := NewAligner(venues.NewRegistry(), &fakeForecastSource{})
	game := models.ScheduledGame{HomeTeam: "KC", AwayTeam: "BAL", Date: "2024-09-05", Kickoff: "8pm"}

	if _, err := aligner.GameWeather(context.Background(), game); err == nil {
		t.Fatal("expected error for unparseable kickoff time")
	}
}
