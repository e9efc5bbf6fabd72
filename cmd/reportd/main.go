package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gameday-weather/api"
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

// reportd runs the event-triggered entry point: an external scheduler POSTs
// {"day_of_week": "..."} to /api/report-run and the day's reports are
// generated and published.
func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
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
	if cfg.Twitter.APIKey == "" || cfg.Twitter.AccessToken == "" {
		log.Fatal("Twitter credentials are not configured")
	}

	// Build the forecast source
	var weatherSource datasource.ForecastSource = datasource.NewOpenWeatherMapSource(cfg.OpenWeatherMap.APIKey)
	if *enableRateLimiting {
		// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
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

	poster := publisher.NewTwitterPublisher(publisher.Credentials{
		APIKey:            cfg.Twitter.APIKey,
		APIKeySecret:      cfg.Twitter.APIKeySecret,
		BearerToken:       cfg.Twitter.BearerToken,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
	})

	var postLog storage.PostLog
	if cfg.PostLogPath != "" {
		sqliteLog, err := storage.NewSQLiteLog(cfg.PostLogPath)
		if err != nil {
			log.Fatalf("Failed to open post log: %v", err)
		}
		postLog = sqliteLog
	}

	server := api.NewServer(generator, poster, postLog, *port)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the trigger server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdownChan
	fmt.Printf("Shutting down due to %s signal\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	if postLog != nil {
		if err := postLog.Close(); err != nil {
			log.Printf("warning: error closing post log: %v", err)
		}
	}

	fmt.Println("Shutdown complete")
}
