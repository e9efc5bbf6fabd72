package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config represents the full runtime configuration. It is built once at
// startup and passed by parameter; nothing reads the environment after
// Load returns.
type Config struct {
	// Season parameters
	SeasonYear  int    `json:"seasonYear"`
	SeasonStart string `json:"seasonStart"` // first game day, YYYY-MM-DD

	// API provider configurations
	OpenWeatherMap struct {
		APIKey string `json:"apiKey"`
	} `json:"openWeatherMap"`

	Twitter struct {
		APIKey            string `json:"apiKey"`
		APIKeySecret      string `json:"apiKeySecret"`
		BearerToken       string `json:"bearerToken"`
		AccessToken       string `json:"accessToken"`
		AccessTokenSecret string `json:"accessTokenSecret"`
	} `json:"twitter"`

	// CacheForecasts reuses one forecast fetch for venues shared by
	// multiple games in a run. Off by default: the baseline behavior is
	// one fetch per game.
	CacheForecasts bool `json:"cacheForecasts"`

	// PostLogPath enables the sqlite audit log of published statuses
	PostLogPath string `json:"postLogPath"`
}

// Load reads configuration from a JSON file, then applies environment
// overrides for the secrets. A missing file is not an error; the
// environment alone can carry everything.
func Load(filename string) (*Config, error) {
	config := Default()

	file, err := os.Open(filename)
	if err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

// Default creates a default configuration for the 2024 season
func Default() *Config {
	return &Config{
		SeasonYear:  2024,
		SeasonStart: "2024-09-05",
	}
}

// SeasonStartDate parses the configured season start day
func (c *Config) SeasonStartDate() (time.Time, error) {
	return time.Parse("2006-01-02", c.SeasonStart)
}

// applyEnv overrides secrets from the environment when set
func applyEnv(c *Config) {
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		c.OpenWeatherMap.APIKey = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		c.Twitter.APIKey = v
	}
	if v := os.Getenv("API_KEY_SECRET"); v != "" {
		c.Twitter.APIKeySecret = v
	}
	if v := os.Getenv("BEARER_TOKEN"); v != "" {
		c.Twitter.BearerToken = v
	}
	if v := os.Getenv("ACCESS_TOKEN"); v != "" {
		c.Twitter.AccessToken = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		c.Twitter.AccessTokenSecret = v
	}
}
