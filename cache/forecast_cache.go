package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gameday-weather/datasource"
	"gameday-weather/models"
)

// CachedForecastSource wraps a ForecastSource and adds caching functionality.
// Useful when several games in one run share a venue (NYG/NYJ, LAC/LA).
type CachedForecastSource struct {
	source         datasource.ForecastSource
	cache          map[string]forecastCacheEntry // key is lat:lon
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// forecastCacheEntry represents a cached forecast series with its timestamp
type forecastCacheEntry struct {
	Data      models.ForecastSeries
	Timestamp time.Time
}

// NewCachedForecastSource creates a new cached wrapper around a forecast source
func NewCachedForecastSource(source datasource.ForecastSource, cacheDuration time.Duration) *CachedForecastSource {
	return &CachedForecastSource{
		source:        source,
		cache:         make(map[string]forecastCacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying forecast source with [Cached] suffix
func (c *CachedForecastSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchForecast fetches forecast data, using cache when available
func (c *CachedForecastSource) FetchForecast(ctx context.Context, latitude, longitude float64) (models.ForecastSeries, error) {
	cacheKey := fmt.Sprintf("%.6f:%.6f", latitude, longitude)

	// First check if we have this forecast in the cache
	c.mutex.RLock()
	entry, found := c.cache[cacheKey]
	c.mutex.RUnlock()

	// If found and not expired, return the cached forecast
	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh forecast
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	forecast, err := c.source.FetchForecast(ctx, latitude, longitude)
	if err != nil {
		return models.ForecastSeries{}, err
	}

	// Store in cache
	c.mutex.Lock()
	c.cache[cacheKey] = forecastCacheEntry{
		Data:      forecast,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return forecast, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedForecastSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*CachedForecastSource)(nil)
