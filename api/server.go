package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"gameday-weather/publisher"
	"gameday-weather/storage"
)

// ReportSource generates the formatted weather reports for one weekday
type ReportSource interface {
	Reports(ctx context.Context, dayOfWeek string) ([]string, error)
}

// Server exposes the event-trigger surface: an external scheduler POSTs the
// target weekday and the server generates and publishes that day's reports.
type Server struct {
	generator ReportSource
	poster    publisher.StatusPoster
	postLog   storage.PostLog // may be nil
	server    *http.Server
}

// NewServer creates a new trigger server. postLog may be nil to disable
// the audit log.
func NewServer(generator ReportSource, poster publisher.StatusPoster, postLog storage.PostLog, port int) *Server {
	mux := http.NewServeMux()

	server := &Server{
		generator: generator,
		poster:    poster,
		postLog:   postLog,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	// Register the trigger endpoint
	mux.HandleFunc("/api/report-run", server.handleReportRun)

	// Health check
	mux.HandleFunc("/api/health", server.handleHealthCheck)

	return server
}

// Start begins the trigger server
func (s *Server) Start() error {
	fmt.Printf("Starting trigger server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight runs
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleReportRun generates the reports for the requested weekday and posts
// every one of them. A generation failure or the first posting failure stops
// the run and reports upstream failure to the caller.
func (s *Server) handleReportRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		DayOfWeek string `json:"day_of_week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}
	if !validWeekday(payload.DayOfWeek) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown day_of_week: %q", payload.DayOfWeek))
		return
	}

	reports, err := s.generator.Reports(r.Context(), payload.DayOfWeek)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to generate reports: %v", err))
		return
	}

	posted, err := publisher.PublishAll(r.Context(), s.poster, reports, s.recordPost)
	if err != nil {
		writeError(w, http.StatusBadGateway,
			fmt.Sprintf("failed after posting %d of %d report(s): %v", posted, len(reports), err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Tweet(s) posted successfully",
		"posted":    posted,
		"timestamp": time.Now(),
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// recordPost appends a published status to the audit log. Log failures are
// warnings; the post already went out.
func (s *Server) recordPost(text string) {
	if s.postLog == nil {
		return
	}
	if err := s.postLog.Record(text, time.Now()); err != nil {
		log.Printf("warning: could not record post: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func validWeekday(name string) bool {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if day.String() == name {
			return true
		}
	}
	return false
}
