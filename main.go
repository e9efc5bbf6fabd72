package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"gameday-weather/cache"
	"gameday-weather/config"
	"gameday-weather/datasource"
	"gameday-weather/publisher"
	"gameday-weather/report"
	"gameday-weather/schedule"
	"gameday-weather/storage"
	"gameday-weather/venues"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	day := flag.String("day", "Thursday", "Weekday to report on")
	post := flag.Bool("post", false, "Publish the reports instead of only printing them")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	seasonStart, err := cfg.SeasonStartDate()
	if err != nil {
		log.Fatalf("Bad season start date %q: %v", cfg.SeasonStart, err)
	}

	if cfg.OpenWeatherMap.APIKey == "" {
		log.Fatal("No OpenWeatherMap API key configured")
	}

	// Build the forecast source
	var weatherSource datasource.ForecastSource = datasource.NewOpenWeatherMapSource(cfg.OpenWeatherMap.APIKey)
	if *enableRateLimiting {
		// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
		// Allow bursts of up to 5 requests
		weatherSource = datasource.NewRateLimitedForecastSource(weatherSource, 1.0, 5)
		log.Println("Applied rate limiting to OpenWeatherMap source")
	}
	if cfg.CacheForecasts {
		weatherSource = cache.NewCachedForecastSource(weatherSource, 30*time.Minute)
		log.Println("Forecast caching enabled")
	}

	generator := report.NewGenerator(
		schedule.NewNflverseSource(),
		report.NewAligner(venues.NewRegistry(), weatherSource),
		cfg.SeasonYear,
		seasonStart,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reports, err := generator.Reports(ctx, *day)
	if err != nil {
		log.Fatalf("Failed to generate reports: %v", err)
	}

	for _, item := range reports {
		fmt.Println(item)
	}

	if !*post {
		return
	}

	if cfg.Twitter.APIKey == "" || cfg.Twitter.AccessToken == "" {
		log.Fatal("Posting enabled but Twitter credentials are not configured")
	}

	var postLog storage.PostLog
	if cfg.PostLogPath != "" {
		sqliteLog, err := storage.NewSQLiteLog(cfg.PostLogPath)
		if err != nil {
			log.Fatalf("Failed to open post log: %v", err)
		}
		defer sqliteLog.Close()
		postLog = sqliteLog
	}

	poster := publisher.NewTwitterPublisher(publisher.Credentials{
		APIKey:            cfg.Twitter.APIKey,
		APIKeySecret:      cfg.Twitter.APIKeySecret,
		BearerToken:       cfg.Twitter.BearerToken,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
	})

	posted, err := publisher.PublishAll(ctx, poster, reports, func(text string) {
		if postLog == nil {
			return
		}
		if err := postLog.Record(text, time.Now()); err != nil {
			log.Printf("warning: could not record post: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Posting aborted after %d of %d report(s): %v", posted, len(reports), err)
	}
	log.Printf("Posted %d report(s)", posted)
}
