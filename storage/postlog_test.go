package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteLogRecordAndList(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test_posts.db")

	log, err := NewSQLiteLog(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteLog failed: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC().Truncate(time.Second)
	if err := log.Record("first report", now); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := log.Record("second report", now.Add(time.Minute)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	posts, err := log.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	// Newest first
	if posts[0].Text != "second report" || posts[1].Text != "first report" {
		t.Errorf("unexpected order: %v", posts)
	}
	if !posts[1].PostedAt.Equal(now) {
		t.Errorf("timestamp round trip: got %v want %v", posts[1].PostedAt, now)
	}
}

func TestSQLiteLogListLimit(t *testing.T) {
	dir := t.TempDir()
	log, err := NewSQLiteLog(filepath.Join(dir, "limit.db"))
	if err != nil {
		t.Fatalf("NewSQLiteLog failed: %v", err)
	}
	defer log.Close()

	for i := 0; i < 5; i++ {
		if err := log.Record("report", time.Now()); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	posts, err := log.List(3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("expected 3 posts, got %d", len(posts))
	}
}
