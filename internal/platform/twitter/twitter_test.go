package twitter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post2embed/internal/platform"
	"post2embed/pkg/retry"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// stubTransport answers every request with the same canned response.
type stubTransport struct {
	status int
	body   string
}

func (s stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(s.body))),
		Header:     make(http.Header),
	}, nil
}

func newTestClient(status int, body string) *Client {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = 0
	return &Client{
		http:      &http.Client{Transport: stubTransport{status: status, body: body}},
		log:       nopLogger{},
		userAgent: "test",
		retryCfg:  cfg,
	}
}

func TestFetchRaw(t *testing.T) {
	c := newTestClient(http.StatusOK, `{"id_str":"42","text":"hi"}`)

	raw, err := c.FetchRaw(context.Background(), "42")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id_str":"42"`)
}

func TestFetchRawTombstone(t *testing.T) {
	c := newTestClient(http.StatusOK, `{"__typename":"TweetTombstone"}`)

	_, err := c.FetchRaw(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrPostNotFound))
}

func TestFetchRawEmptyPayload(t *testing.T) {
	c := newTestClient(http.StatusOK, "")

	_, err := c.FetchRaw(context.Background(), "42")
	assert.Error(t, err)
}

func TestFetchRawServerError(t *testing.T) {
	c := newTestClient(http.StatusBadGateway, "")

	_, err := c.FetchRaw(context.Background(), "42")
	assert.Error(t, err)
}
