// Package platform defines the upstream-API contract the converter
// consumes and the detection of which platform a post reference belongs to.
package platform

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"post2embed/internal/domain"
)

// ErrPostNotFound marks a post that was deleted or never existed: the
// upstream answered, but with a tombstone or error shape. It is terminal
// and user-visible, not retryable.
var ErrPostNotFound = errors.New("post does not exist or was deleted")

// Fetcher retrieves one post from its platform and normalizes it into the
// shared domain shape. FetchRaw exposes the untouched JSON payload for the
// dump output mode.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (*domain.Post, error)
	FetchRaw(ctx context.Context, ref string) ([]byte, error)
}

var twitterHosts = map[string]bool{
	"twitter.com":     true,
	"www.twitter.com": true,
	"x.com":           true,
	"www.x.com":       true,
}

// Detect classifies a post reference: a bare numeric ID or a twitter.com /
// x.com status URL is a Twitter post (the returned ref is the status ID);
// anything else is treated as a Mastodon post URL.
func Detect(raw string) (domain.Platform, string) {
	if isDigits(raw) {
		return domain.PlatformTwitter, raw
	}
	if u, err := url.Parse(raw); err == nil && twitterHosts[u.Host] {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		return domain.PlatformTwitter, segments[len(segments)-1]
	}
	return domain.PlatformMastodon, raw
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
