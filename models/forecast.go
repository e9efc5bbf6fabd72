package models

import (
	"time"
)

// ForecastPoint represents a single hourly forecast entry for a venue
type ForecastPoint struct {
	Timestamp   time.Time `json:"timestamp"`   // time this entry is for
	Condition   string    `json:"condition"`   // primary condition code, e.g. "Snow"
	TempKelvin  float64   `json:"tempKelvin"`  // temperature in Kelvin
	PrecipProb  float64   `json:"precipProb"`  // probability of precipitation, 0.0-1.0
	Description string    `json:"description"` // short text description
}

// ForecastSeries represents an hourly forecast for one venue from a provider
type ForecastSeries struct {
	Provider  string          `json:"provider"`  // weather data provider name
	Latitude  float64         `json:"latitude"`  // venue latitude
	Longitude float64         `json:"longitude"` // venue longitude
	Points    []ForecastPoint `json:"points"`    // hourly entries, ordered by time ascending
	Updated   time.Time       `json:"updated"`   // when this series was fetched
}
