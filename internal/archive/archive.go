// Package archive submits post URLs to the Wayback Machine.
package archive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/fx"

	"post2embed/pkg/logger"
)

const saveEndpoint = "https://web.archive.org/save/"

// The save endpoint queues the capture and then renders a progress page;
// waiting for the full response is pointless, so requests are cut short.
const submitTimeout = 5 * time.Second

type Client struct {
	http *http.Client
	log  logger.Logger
}

type Opts struct {
	fx.In

	Logger logger.Logger
}

func New(opts Opts) *Client {
	return &Client{
		http: &http.Client{Timeout: submitTimeout},
		log:  opts.Logger,
	}
}

// Submit asks the Wayback Machine to capture the given URL, including any
// outlinked resources. Timeouts after the request is accepted are expected
// and not treated as failures by callers.
func (c *Client) Submit(ctx context.Context, target string) error {
	form := url.Values{
		"url":         {target},
		"capture_all": {"on"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, saveEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("archive %s: %w", target, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.log.Info("Submitting to the Wayback Machine", "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("archive %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("archive %s: unexpected status %d", target, resp.StatusCode)
	}
	return nil
}
