package datasource

import (
	"context"

	"gameday-weather/models"
)

// ForecastSource is an interface for services that can fetch hourly weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the hourly forecast series for a coordinate pair
	FetchForecast(ctx context.Context, latitude, longitude float64) (models.ForecastSeries, error)

	// Name returns the source's name
	Name() string
}
