package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// SocialConfig configures the network publisher.
type SocialConfig struct {
	// Tokens maps a platform name to its API token. Platforms without a
	// token report configuration-missing on publish.
	Tokens map[string]string

	// BaseURLs maps a platform name to its publish endpoint. Platforms
	// without an explicit entry use the default endpoint pattern.
	BaseURLs map[string]string

	Timeout time.Duration
}

// NetworkPublisher implements SocialPublisher over per-platform REST
// endpoints. Single attempt per post.
type NetworkPublisher struct {
	tokens     map[string]string
	baseURLs   map[string]string
	httpClient *http.Client
}

// NewNetworkPublisher creates a publisher. Missing tokens are allowed and
// surface as configuration-missing results at publish time.
func NewNetworkPublisher(cfg SocialConfig) *NetworkPublisher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &NetworkPublisher{
		tokens:     cfg.Tokens,
		baseURLs:   cfg.BaseURLs,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type postRequest struct {
	Content string `json:"content"`
}

// Publish posts content to one platform.
func (p *NetworkPublisher) Publish(ctx context.Context, platform, content string) Result {
	platform = strings.ToLower(strings.TrimSpace(platform))
	token := p.tokens[platform]
	if token == "" {
		logging.DeliveryDebug("Publish to %s skipped: no token", platform)
		return ConfigMissing("social publishing for " + platform)
	}

	endpoint := p.baseURLs[platform]
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.%s.com/v1/posts", platform)
	}

	payload, err := json.Marshal(postRequest{Content: content})
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Success: false, Message: fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, string(respBody))}
	}

	logging.Delivery("Published post to %s (%d bytes)", platform, len(content))
	return Result{Success: true, Message: fmt.Sprintf("post published to %s", platform)}
}

// Post pairs a platform with post content for broadcast publishing.
type Post struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

// Broadcast publishes several posts concurrently and returns per-post
// results in input order. Delivery failures are reported in the results,
// not as an error; only context cancellation aborts the broadcast.
func Broadcast(ctx context.Context, publisher SocialPublisher, posts []Post) ([]Result, error) {
	results := make([]Result, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	for i, post := range posts {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
				results[i] = publisher.Publish(gctx, post.Platform, post.Content)
				return nil
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
