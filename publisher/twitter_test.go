package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostStatusSendsText(t *testing.T) {
	var gotPath, gotText string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		json.Unmarshal(body, &payload)
		gotText = payload["text"]
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer ts.Close()

	pub := &TwitterPublisher{baseURL: ts.URL, httpClient: ts.Client()}
	if err := pub.PostStatus(context.Background(), "KC(H) vs BAL(A) weather report:\n"); err != nil {
		t.Fatalf("PostStatus failed: %v", err)
	}

	if gotPath != "/tweets" {
		t.Errorf("posted to %q, want /tweets", gotPath)
	}
	if gotText != "KC(H) vs BAL(A) weather report:\n" {
		t.Errorf("posted text %q", gotText)
	}
}

func TestPostStatusErrorPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"title":"Forbidden"}`))
	}))
	defer ts.Close()

	pub := &TwitterPublisher{baseURL: ts.URL, httpClient: ts.Client()}
	if err := pub.PostStatus(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

type scriptedPoster struct {
	posted []string
	failOn int // 1-based post index that fails; 0 never fails
}

func (p *scriptedPoster) Name() string { return "scripted" }

func (p *scriptedPoster) PostStatus(ctx context.Context, text string) error {
	if p.failOn != 0 && len(p.posted)+1 == p.failOn {
		return errors.New("rejected")
	}
	p.posted = append(p.posted, text)
	return nil
}

func TestPublishAllPostsInOrder(t *testing.T) {
	poster := &scriptedPoster{}
	var recorded []string

	posted, err := PublishAll(context.Background(), poster, []string{"one", "two", "three"}, func(text string) {
		recorded = append(recorded, text)
	})
	if err != nil {
		t.Fatalf("PublishAll failed: %v", err)
	}
	if posted != 3 || len(poster.posted) != 3 {
		t.Fatalf("expected 3 posts, got %d", posted)
	}
	if poster.posted[0] != "one" || poster.posted[2] != "three" {
		t.Errorf("posts out of order: %v", poster.posted)
	}
	if len(recorded) != 3 {
		t.Errorf("expected 3 onPosted callbacks, got %d", len(recorded))
	}
}

func TestPublishAllAbortsOnFirstFailure(t *testing.T) {
	poster := &scriptedPoster{failOn: 2}

	posted, err := PublishAll(context.Background(), poster, []string{"one", "two", "three"}, nil)
	if err == nil {
		t.Fatal("expected failure to propagate")
	}
	if posted != 1 {
		t.Errorf("expected 1 successful post before the failure, got %d", posted)
	}
	if len(poster.posted) != 1 {
		t.Errorf("remaining posts must not be attempted: %v", poster.posted)
	}
}
