package models

// ScheduledGame represents one game from the weekly league schedule
type ScheduledGame struct {
	HomeTeam string `json:"homeTeam"` // team code, e.g. "KC"
	AwayTeam string `json:"awayTeam"`
	Date     string `json:"date"`    // game day, YYYY-MM-DD
	Kickoff  string `json:"kickoff"` // kickoff wall-clock time, HH:MM Eastern
}
