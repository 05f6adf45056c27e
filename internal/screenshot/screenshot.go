// Package screenshot renders a post as an image through a headless browser
// and generates alt text for it from the normalized post.
package screenshot

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/fx"

	"post2embed/internal/config"
	"post2embed/internal/inliner"
	"post2embed/pkg/logger"
)

const embedURL = "https://platform.twitter.com/embed/Tweet.html?hideCard=false&hideThread=%t&lang=en&theme=light&width=550px&id=%s"

// Image is a captured, downscaled screenshot.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

type Capturer struct {
	log        logger.Logger
	chromePath string
	wait       time.Duration
	maxWidth   int
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *Capturer {
	return &Capturer{
		log:        opts.Logger,
		chromePath: opts.Config.Screenshot.ChromePath,
		wait:       opts.Config.Screenshot.Wait,
		maxWidth:   opts.Config.Image.MaxWidth,
	}
}

// Capture opens the post on the embed platform, waits for it to settle and
// screenshots the post element. The result is downscaled to the configured
// maximum width; HiDPI environments capture at twice the CSS size.
func (c *Capturer) Capture(ctx context.Context, postID string, showThread bool) (Image, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 2160),
		chromedp.Flag("force-device-scale-factor", "1"),
	)
	if c.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	url := fmt.Sprintf(embedURL, !showThread, postID)
	c.log.Info("Capturing screenshot", "url", url)

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("article", chromedp.ByQuery),
		chromedp.Sleep(c.wait),
		chromedp.Screenshot("article", &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return Image{}, fmt.Errorf("capture post %s: %w", postID, err)
	}

	return c.downscale(buf)
}

func (c *Capturer) downscale(raw []byte) (Image, error) {
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("decode screenshot: %w", err)
	}

	img = inliner.Downscale(img, c.maxWidth)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, fmt.Errorf("encode screenshot: %w", err)
	}

	bounds := img.Bounds()
	return Image{PNG: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
