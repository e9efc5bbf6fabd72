package storage

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// PostLog records statuses that were actually published. It is an audit
// trail only; runs never read it back.
type PostLog interface {
	Record(text string, postedAt time.Time) error
	List(limit int) ([]PostedStatus, error)
	Close() error
}

// PostedStatus is one published status
type PostedStatus struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"postedAt"`
}

// SQLiteLog implements PostLog using the pure Go sqlite driver
type SQLiteLog struct {
	db *sql.DB
}

// NewSQLiteLog opens (or creates) the post log database at path
func NewSQLiteLog(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS posts (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        text TEXT NOT NULL,
        posted_at TEXT NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteLog{db: db}, nil
}

func (s *SQLiteLog) Record(text string, postedAt time.Time) error {
	_, err := s.db.Exec(`INSERT INTO posts(text, posted_at) VALUES(?,?)`,
		text, postedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteLog) List(limit int) ([]PostedStatus, error) {
	rows, err := s.db.Query(`SELECT id, text, posted_at FROM posts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PostedStatus
	for rows.Next() {
		var p PostedStatus
		var ts string
		if err := rows.Scan(&p.ID, &p.Text, &ts); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err == nil {
			p.PostedAt = t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteLog) Close() error {
	return s.db.Close()
}

// Verify SQLiteLog implements the PostLog interface
var _ PostLog = (*SQLiteLog)(nil)
