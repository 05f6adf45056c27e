// Package inliner converts remote images into data URIs so the rendered
// card needs no external fetches at display time.
package inliner

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"sync"

	_ "image/gif" // register GIF decoder
	_ "image/png" // register PNG decoder

	"go.uber.org/fx"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"post2embed/internal/config"
	"post2embed/pkg/logger"
)

// Inliner resolves an image URL into a self-contained data URI. Calls must
// be idempotent and safe for concurrent use.
type Inliner interface {
	Inline(ctx context.Context, url string) (string, error)
}

type HTTPInliner struct {
	client   *http.Client
	log      logger.Logger
	quality  int
	maxWidth int

	mu    sync.Mutex
	cache map[string]string
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func NewHTTP(opts Opts) *HTTPInliner {
	return &HTTPInliner{
		client:   &http.Client{Timeout: opts.Config.HTTP.Timeout},
		log:      opts.Logger,
		quality:  opts.Config.Image.Quality,
		maxWidth: opts.Config.Image.MaxWidth,
		cache:    make(map[string]string),
	}
}

var _ Inliner = (*HTTPInliner)(nil)

// Inline downloads the image, recompresses it as a modest-quality JPEG and
// returns it as a data URI. Results are memoized per URL; avatars and
// custom emoji repeat across thread levels.
func (h *HTTPInliner) Inline(ctx context.Context, url string) (string, error) {
	h.mu.Lock()
	if uri, ok := h.cache[url]; ok {
		h.mu.Unlock()
		return uri, nil
	}
	h.mu.Unlock()

	h.log.Debug("Embedding image", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image %s: unexpected status %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", url, err)
	}

	uri, err := h.encode(raw)
	if err != nil {
		return "", fmt.Errorf("encode image %s: %w", url, err)
	}

	h.mu.Lock()
	h.cache[url] = uri
	h.mu.Unlock()

	return uri, nil
}

func (h *HTTPInliner) encode(raw []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	img = Downscale(img, h.maxWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: h.quality}); err != nil {
		return "", err
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Downscale resizes img to at most maxWidth pixels wide, preserving aspect
// ratio. Images already narrow enough pass through untouched.
func Downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}
	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
