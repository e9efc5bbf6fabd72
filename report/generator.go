package report

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gameday-weather/models"
	"gameday-weather/schedule"
)

// Generator builds the weather reports for every game of the current week
// that falls on a target weekday.
type Generator struct {
	schedule    schedule.Source
	aligner     *Aligner
	season      int
	seasonStart time.Time
	now         func() time.Time
}

// NewGenerator creates a report generator for one season
func NewGenerator(source schedule.Source, aligner *Aligner, season int, seasonStart time.Time) *Generator {
	return &Generator{
		schedule:    source,
		aligner:     aligner,
		season:      season,
		seasonStart: seasonStart,
		now:         time.Now,
	}
}

// Reports returns one formatted report per game of the current week scheduled
// on dayOfWeek (a weekday name such as "Thursday"), in schedule order.
// A failure on one game is logged and that game skipped; it never aborts the
// rest of the batch. A schedule fetch failure is fatal and propagates.
func (g *Generator) Reports(ctx context.Context, dayOfWeek string) ([]string, error) {
	week := schedule.CurrentWeek(g.seasonStart, g.now())

	games, err := g.schedule.FetchWeek(ctx, g.season, week)
	if err != nil {
		return nil, fmt.Errorf("fetching week %d schedule: %w", week, err)
	}

	// Pick out the games on the requested day. Rows with an unparseable
	// date are a per-game problem: log and skip.
	var selected []models.ScheduledGame
	for _, game := range games {
		day, err := time.ParseInLocation("2006-01-02", game.Date, eastern)
		if err != nil {
			log.Printf("skipping %s vs %s: bad game date %q: %v", game.HomeTeam, game.AwayTeam, game.Date, err)
			continue
		}
		if day.Weekday().String() != dayOfWeek {
			continue
		}
		selected = append(selected, game)
	}

	// Each game's weather fetch is independent, so fan out. Results land in
	// an index-addressed slice to keep output order equal to schedule order,
	// and each failure stays confined to its own game.
	texts := make([]string, len(selected))
	generated := make([]bool, len(selected))

	var wg sync.WaitGroup
	for i, game := range selected {
		wg.Add(1)
		go func(i int, game models.ScheduledGame) {
			defer wg.Done()

			block, err := g.aligner.GameWeather(ctx, game)
			if err != nil {
				log.Printf("error generating report for %s vs %s on %s: %v",
					game.HomeTeam, game.AwayTeam, game.Date, err)
				return
			}

			texts[i] = fmt.Sprintf("%s(H) vs %s(A) weather report:\n%s",
				game.HomeTeam, game.AwayTeam, block)
			generated[i] = true
		}(i, game)
	}
	wg.Wait()

	reports := make([]string, 0, len(selected))
	for i := range texts {
		if generated[i] {
			reports = append(reports, texts[i])
		}
	}
	return reports, nil
}
