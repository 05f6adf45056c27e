// Package render turns a normalized post into a self-contained HTML embed
// card: entity spans become anchors, media and avatars become inline data
// URIs, polls become meters, and thread/quote posts nest recursively.
package render

import (
	"go.uber.org/fx"
	"golang.org/x/text/language"

	"post2embed/internal/config"
	"post2embed/internal/inliner"
	"post2embed/pkg/formatter"
	"post2embed/pkg/logger"
)

// maxThreadDepth bounds parent/quote recursion. Real payloads nest one
// level; anything deeper (or a repeated ID) is treated as hostile data and
// skipped.
const maxThreadDepth = 4

type Assembler struct {
	inliner inliner.Inliner
	log     logger.Logger
	locale  language.Tag
}

type Opts struct {
	fx.In

	Inliner inliner.Inliner
	Logger  logger.Logger
	Config  *config.Config
}

func New(opts Opts) *Assembler {
	return &Assembler{
		inliner: opts.Inliner,
		log:     opts.Logger,
		locale:  formatter.ParseLocale(opts.Config.App.Locale),
	}
}
