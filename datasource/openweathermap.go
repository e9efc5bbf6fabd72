package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gameday-weather/models"
)

// OpenWeatherMapSource fetches hourly forecasts from the One Call 3.0 API
type OpenWeatherMapSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapSource creates a new OpenWeatherMap forecast source
func NewOpenWeatherMapSource(apiKey string) *OpenWeatherMapSource {
	return &OpenWeatherMapSource{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/3.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the source name
func (p *OpenWeatherMapSource) Name() string {
	return "OpenWeatherMap"
}

// FetchForecast fetches the hourly forecast series for a coordinate pair.
// Temperatures come back in Kelvin (the API default) and precipitation
// probability as a 0.0-1.0 fraction; both are kept as-is in the series.
func (p *OpenWeatherMapSource) FetchForecast(ctx context.Context, latitude, longitude float64) (models.ForecastSeries, error) {
	// Build URL
	endpoint := fmt.Sprintf("%s/onecall", p.baseURL)
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Add("exclude", "current,minutely,alerts")
	params.Add("appid", p.apiKey)

	// Create request
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.ForecastSeries{}, fmt.Errorf("failed to create request: %w", err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.ForecastSeries{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ForecastSeries{}, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for error status code
	if resp.StatusCode != http.StatusOK {
		return models.ForecastSeries{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Parse response
	var response struct {
		Hourly []struct {
			Dt      int64   `json:"dt"`
			Temp    float64 `json:"temp"`
			Pop     float64 `json:"pop"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"hourly"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.ForecastSeries{}, fmt.Errorf("failed to parse response: %w", err)
	}

	series := models.ForecastSeries{
		Provider:  p.Name(),
		Latitude:  latitude,
		Longitude: longitude,
		Points:    []models.ForecastPoint{},
		Updated:   time.Now(),
	}

	for _, item := range response.Hourly {
		// Extract condition code and description if available
		condition := ""
		description := "No description available"
		if len(item.Weather) > 0 {
			condition = item.Weather[0].Main
			description = item.Weather[0].Description
		}

		series.Points = append(series.Points, models.ForecastPoint{
			Timestamp:   time.Unix(item.Dt, 0),
			Condition:   condition,
			TempKelvin:  item.Temp,
			PrecipProb:  item.Pop,
			Description: description,
		})
	}

	return series, nil
}

// Verify OpenWeatherMapSource implements the ForecastSource interface
var _ ForecastSource = (*OpenWeatherMapSource)(nil)
