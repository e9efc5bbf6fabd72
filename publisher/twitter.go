package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
)

// Credentials are the pre-provisioned keys for the posting account.
// BearerToken is carried for parity with the provisioning flow; posting a
// status requires the user-context OAuth1 keys.
type Credentials struct {
	APIKey            string
	APIKeySecret      string
	BearerToken       string
	AccessToken       string
	AccessTokenSecret string
}

// StatusPoster is an interface for services that can post a status update
type StatusPoster interface {
	// PostStatus publishes a single text status
	PostStatus(ctx context.Context, text string) error

	// Name returns the poster's name
	Name() string
}

// TwitterPublisher posts statuses through the X API v2 create-tweet endpoint
type TwitterPublisher struct {
	baseURL    string
	httpClient *http.Client
}

// NewTwitterPublisher creates a publisher with an OAuth1-signing HTTP client
func NewTwitterPublisher(creds Credentials) *TwitterPublisher {
	config := oauth1.NewConfig(creds.APIKey, creds.APIKeySecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	client := config.Client(oauth1.NoContext, token)
	client.Timeout = 10 * time.Second

	return &TwitterPublisher{
		baseURL:    "https://api.twitter.com/2",
		httpClient: client,
	}
}

// Name returns the publisher name
func (p *TwitterPublisher) Name() string {
	return "Twitter"
}

// PostStatus publishes one text status
func (p *TwitterPublisher) PostStatus(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/tweets", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("post API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// PublishAll posts each report in order, sequentially. The first failure
// aborts the remaining posts and propagates; the count of posts that went
// out is returned either way. onPosted, if non-nil, is called after each
// successful post.
func PublishAll(ctx context.Context, poster StatusPoster, reports []string, onPosted func(text string)) (int, error) {
	for i, text := range reports {
		if err := poster.PostStatus(ctx, text); err != nil {
			return i, fmt.Errorf("posting report %d of %d via %s: %w", i+1, len(reports), poster.Name(), err)
		}
		if onPosted != nil {
			onPosted(text)
		}
	}
	return len(reports), nil
}

// Verify TwitterPublisher implements the StatusPoster interface
var _ StatusPoster = (*TwitterPublisher)(nil)
