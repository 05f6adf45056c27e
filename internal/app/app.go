// Package app wires the components together and drives one invocation:
// each reference on the command line is fetched, converted into the
// requested output formats and delivered.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/fx"

	"post2embed/internal/archive"
	"post2embed/internal/config"
	"post2embed/internal/domain"
	"post2embed/internal/inliner"
	"post2embed/internal/output"
	"post2embed/internal/platform"
	"post2embed/internal/platform/mastodon"
	"post2embed/internal/platform/twitter"
	"post2embed/internal/render"
	"post2embed/internal/screenshot"
	"post2embed/pkg/formatter"
	"post2embed/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		newLogger,
		fx.Annotate(
			inliner.NewHTTP,
			fx.As(new(inliner.Inliner)),
		),
		twitter.New,
		mastodon.New,
		render.New,
		screenshot.New,
		archive.New,
		output.New,
		NewRunner,
	),
)

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Opts{
		Env:       cfg.App.Env,
		Verbose:   cfg.App.Verbose,
		SentryDSN: cfg.App.SentryDSN,
	})
}

type Runner struct {
	log       logger.Logger
	options   config.Options
	twitter   *twitter.Client
	mastodon  *mastodon.Client
	assembler *render.Assembler
	capturer  *screenshot.Capturer
	archive   *archive.Client
	sink      *output.Sink
}

type RunnerOpts struct {
	fx.In

	Logger    logger.Logger
	Options   config.Options
	Twitter   *twitter.Client
	Mastodon  *mastodon.Client
	Assembler *render.Assembler
	Capturer  *screenshot.Capturer
	Archive   *archive.Client
	Sink      *output.Sink
}

func NewRunner(opts RunnerOpts) *Runner {
	return &Runner{
		log:       opts.Logger,
		options:   opts.Options,
		twitter:   opts.Twitter,
		mastodon:  opts.Mastodon,
		assembler: opts.Assembler,
		capturer:  opts.Capturer,
		archive:   opts.Archive,
		sink:      opts.Sink,
	}
}

// Run converts every reference in turn. A failing reference is logged and
// skipped; Run only errors when nothing succeeded.
func (r *Runner) Run(ctx context.Context) error {
	warnedImages := false
	failed := 0

	for _, ref := range r.options.References {
		if err := r.convert(ctx, ref, &warnedImages); err != nil {
			if errors.Is(err, platform.ErrPostNotFound) {
				r.log.Error("Post does not exist or was deleted", "reference", ref)
			} else {
				r.log.Error("Conversion failed", "reference", ref, "error", err)
			}
			failed++
		}
	}

	if failed > 0 && failed == len(r.options.References) {
		return fmt.Errorf("all %d references failed", failed)
	}
	return nil
}

func (r *Runner) convert(ctx context.Context, ref string, warnedImages *bool) error {
	pf, id := platform.Detect(ref)
	switch pf {
	case domain.PlatformTwitter:
		return r.convertTwitter(ctx, id)
	default:
		return r.convertMastodon(ctx, ref, warnedImages)
	}
}

func (r *Runner) convertTwitter(ctx context.Context, id string) error {
	raw, err := r.twitter.FetchRaw(ctx, id)
	if err != nil {
		return err
	}
	post := twitter.Normalize(gjson.ParseBytes(raw))

	renderOpts := domain.RenderOptions{
		ShowThread: r.options.ShowThread,
		SchemaOrg:  r.options.SchemaOrg,
	}

	if r.options.WantsOutput("html") {
		canonicalURL, doc, err := r.assembler.Assemble(ctx, post, renderOpts)
		if err != nil {
			return err
		}
		if err := r.sink.DeliverHTML(id, canonicalURL, doc); err != nil {
			return err
		}
	}

	if r.options.WantsOutput("img") {
		img, err := r.capturer.Capture(ctx, id, r.options.ShowThread)
		if err != nil {
			return err
		}
		alt := screenshot.BuildAltText(post, r.options.ShowThread)
		if err := r.sink.DeliverImage(id, post.CanonicalURL, alt, img); err != nil {
			return err
		}
	}

	if r.options.WantsOutput("json") {
		if err := r.sink.DeliverJSON(id, raw); err != nil {
			return err
		}
	}

	r.submitArchive(ctx, post.CanonicalURL)
	return nil
}

func (r *Runner) convertMastodon(ctx context.Context, postURL string, warnedImages *bool) error {
	raw, err := r.mastodon.FetchRaw(ctx, postURL)
	if err != nil {
		return err
	}
	post := mastodon.Normalize(gjson.ParseBytes(raw))
	baseName := formatter.SafeFilename(postURL)

	if r.options.WantsOutput("html") {
		canonicalURL, doc, err := r.assembler.Assemble(ctx, post, domain.RenderOptions{
			ShowThread: r.options.ShowThread,
			SchemaOrg:  r.options.SchemaOrg,
		})
		if err != nil {
			return err
		}
		if err := r.sink.DeliverHTML(baseName, canonicalURL, doc); err != nil {
			return err
		}
	}

	if r.options.WantsOutput("img") && !*warnedImages {
		// The screenshot path goes through the embed platform, which only
		// serves tweets.
		r.log.Warn("Image output is not available for this platform, skipping")
		*warnedImages = true
	}

	if r.options.WantsOutput("json") {
		if err := r.sink.DeliverJSON(baseName, raw); err != nil {
			return err
		}
	}

	r.submitArchive(ctx, post.CanonicalURL)
	return nil
}

// submitArchive is fire and forget; a missed capture never fails the
// conversion that triggered it.
func (r *Runner) submitArchive(ctx context.Context, url string) {
	if !r.options.Archive || url == "" {
		return
	}
	if err := r.archive.Submit(ctx, url); err != nil {
		r.log.Warn("Wayback Machine submission failed", "url", url, "error", err)
	}
}
