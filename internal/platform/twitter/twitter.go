// Package twitter fetches posts from the public syndication endpoint and
// normalizes the payload's historical shape variants.
package twitter

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/fx"

	"post2embed/internal/config"
	"post2embed/internal/domain"
	"post2embed/internal/platform"
	"post2embed/pkg/logger"
	"post2embed/pkg/retry"
)

const endpoint = "https://cdn.syndication.twimg.com/tweet-result"

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

// Fetch downloads and normalizes one post by status ID.
func (c *Client) Fetch(ctx context.Context, id string) (*domain.Post, error) {
	raw, err := c.FetchRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	return Normalize(gjson.ParseBytes(raw)), nil
}

// FetchRaw retrieves the syndication payload for a status ID, retrying
// transient failures. A tombstone payload is reported as
// platform.ErrPostNotFound.
func (c *Client) FetchRaw(ctx context.Context, id string) ([]byte, error) {
	var body []byte

	operation := func() error {
		// The endpoint load-balances on the token; any small number works.
		url := fmt.Sprintf("%s?id=%s&lang=en&token=%d", endpoint, id, rand.Intn(10000)+1)
		c.log.Debug("Downloading post data", "url", url)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	if err := retry.Do(ctx, c.log, "TwitterFetch", operation, c.retryCfg); err != nil {
		return nil, fmt.Errorf("fetch tweet %s: %w", id, err)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.Exists() || len(body) == 0 {
		return nil, fmt.Errorf("fetch tweet %s: empty payload", id)
	}
	if parsed.Get("__typename").String() == "TweetTombstone" {
		return nil, fmt.Errorf("tweet %s: %w", id, platform.ErrPostNotFound)
	}

	return body, nil
}
