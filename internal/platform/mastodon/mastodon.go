// Package mastodon fetches posts from an instance's public status API.
// The instance is derived from the post URL itself; there is no fixed
// upstream host.
package mastodon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/fx"

	"post2embed/internal/config"
	"post2embed/internal/domain"
	"post2embed/internal/platform"
	"post2embed/pkg/logger"
	"post2embed/pkg/retry"
)

type Client struct {
	http      *http.Client
	log       logger.Logger
	userAgent string
	retryCfg  retry.Config
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *Client {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = opts.Config.HTTP.MaxRetries
	return &Client{
		http:      &http.Client{Timeout: opts.Config.HTTP.Timeout},
		log:       opts.Logger,
		userAgent: opts.Config.HTTP.UserAgent,
		retryCfg:  cfg,
	}
}

var _ platform.Fetcher = (*Client)(nil)

// apiURL turns a public post URL like https://example.social/@user/123456
// into the instance's status API endpoint.
func apiURL(postURL string) (string, error) {
	u, err := url.Parse(postURL)
	if err != nil {
		return "", fmt.Errorf("parse post URL %q: %w", postURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("post URL %q has no host", postURL)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	return fmt.Sprintf("https://%s/api/v1/statuses/%s", u.Host, id), nil
}

// Fetch downloads and normalizes one post by its public URL.
func (c *Client) Fetch(ctx context.Context, postURL string) (*domain.Post, error) {
	raw, err := c.FetchRaw(ctx, postURL)
	if err != nil {
		return nil, err
	}
	return Normalize(gjson.ParseBytes(raw)), nil
}

// FetchRaw retrieves the status payload, retrying transient failures. An
// error-shaped payload is reported as platform.ErrPostNotFound.
func (c *Client) FetchRaw(ctx context.Context, postURL string) ([]byte, error) {
	endpoint, err := apiURL(postURL)
	if err != nil {
		return nil, err
	}

	var body []byte
	operation := func() error {
		c.log.Debug("Downloading post data", "url", endpoint)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		// 404 means the post is gone; retrying will not bring it back.
		if resp.StatusCode == http.StatusNotFound {
			return retry.Permanent(platform.ErrPostNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	if err := retry.Do(ctx, c.log, "MastodonFetch", operation, c.retryCfg); err != nil {
		return nil, fmt.Errorf("fetch post %s: %w", postURL, err)
	}

	parsed := gjson.ParseBytes(body)
	if len(body) == 0 || !parsed.Exists() {
		return nil, fmt.Errorf("fetch post %s: empty payload", postURL)
	}
	if parsed.Get("error").Exists() {
		return nil, fmt.Errorf("post %s: %w", postURL, platform.ErrPostNotFound)
	}

	return body, nil
}
