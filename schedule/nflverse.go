package schedule

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"gameday-weather/models"
)

// Source is an interface for services that can fetch the league schedule
type Source interface {
	// FetchWeek fetches the games scheduled for one week of a season
	FetchWeek(ctx context.Context, season, week int) ([]models.ScheduledGame, error)

	// Name returns the source's name
	Name() string
}

// NflverseSource fetches the schedule from the nflverse games CSV
type NflverseSource struct {
	gamesURL   string
	httpClient *http.Client
}

// NewNflverseSource creates a new nflverse schedule source
func NewNflverseSource() *NflverseSource {
	return &NflverseSource{
		gamesURL: "https://github.com/nflverse/nfldata/raw/master/data/games.csv",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the source name
func (s *NflverseSource) Name() string {
	return "nflverse"
}

// FetchWeek fetches the schedule CSV and returns the games whose season and
// week columns both match. Rows with an unparseable season or week are
// logged and skipped; a missing column is a malformed feed and fails the fetch.
func (s *NflverseSource) FetchWeek(ctx context.Context, season, week int) ([]models.ScheduledGame, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.gamesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("schedule feed error (status %d): %s", resp.StatusCode, string(body))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // the feed grows columns over time

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule header: %w", err)
	}

	columns, err := requiredColumns(header)
	if err != nil {
		return nil, err
	}

	var games []models.ScheduledGame
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read schedule row: %w", err)
		}
		if len(record) <= columns.max() {
			log.Printf("skipping short schedule row %d (%d fields)", line, len(record))
			continue
		}

		rowSeason, err := strconv.Atoi(record[columns.season])
		if err != nil {
			log.Printf("skipping schedule row %d: bad season %q", line, record[columns.season])
			continue
		}
		rowWeek, err := strconv.Atoi(record[columns.week])
		if err != nil {
			log.Printf("skipping schedule row %d: bad week %q", line, record[columns.week])
			continue
		}
		if rowSeason != season || rowWeek != week {
			continue
		}

		games = append(games, models.ScheduledGame{
			HomeTeam: record[columns.homeTeam],
			AwayTeam: record[columns.awayTeam],
			Date:     record[columns.gameday],
			Kickoff:  record[columns.gametime],
		})
	}

	return games, nil
}

// columnIndexes holds the positions of the schedule columns this source reads
type columnIndexes struct {
	season   int
	week     int
	gameday  int
	gametime int
	homeTeam int
	awayTeam int
}

func (c columnIndexes) max() int {
	m := c.season
	for _, idx := range []int{c.week, c.gameday, c.gametime, c.homeTeam, c.awayTeam} {
		if idx > m {
			m = idx
		}
	}
	return m
}

func requiredColumns(header []string) (columnIndexes, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}

	indexes := columnIndexes{}
	for name, target := range map[string]*int{
		"season":    &indexes.season,
		"week":      &indexes.week,
		"gameday":   &indexes.gameday,
		"gametime":  &indexes.gametime,
		"home_team": &indexes.homeTeam,
		"away_team": &indexes.awayTeam,
	} {
		idx, exists := positions[name]
		if !exists {
			return columnIndexes{}, fmt.Errorf("schedule feed missing column %q", name)
		}
		*target = idx
	}
	return indexes, nil
}

// Verify NflverseSource implements the Source interface
var _ Source = (*NflverseSource)(nil)
