// Package output delivers finished conversions to the clipboard, to files
// on disk, or to stdout.
package output

import (
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/fx"

	"post2embed/internal/config"
	"post2embed/internal/screenshot"
	"post2embed/pkg/logger"
)

type Sink struct {
	log  logger.Logger
	opts config.Options
}

type Opts struct {
	fx.In

	Logger  logger.Logger
	Options config.Options
}

func New(opts Opts) *Sink {
	return &Sink{log: opts.Logger, opts: opts.Options}
}

// Compact strips template indentation so the fragment pastes as one line.
func Compact(doc string) string {
	doc = strings.NewReplacer("\n", "", "\t", "").Replace(doc)
	return strings.TrimSpace(doc)
}

// DeliverHTML finishes the document per the invocation options and hands it
// to each requested destination. baseName is the file name stem used when
// saving.
func (s *Sink) DeliverHTML(baseName, canonicalURL, doc string) error {
	if !s.opts.Pretty {
		doc = Compact(doc)
	}
	if s.opts.ShowCSS {
		doc = Stylesheet + doc
	}

	if s.opts.SaveDir != "" {
		if err := s.save(baseName+".html", []byte(doc)); err != nil {
			return err
		}
	}
	if s.opts.Clipboard {
		if err := clipboard.WriteAll(doc); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		s.log.Info("Copied HTML to clipboard", "url", canonicalURL)
	}
	return nil
}

// DeliverImage writes the screenshot and its alt text. The clipboard form
// is a self-contained anchor with the image inlined as a data URI.
func (s *Sink) DeliverImage(baseName, canonicalURL, altText string, img screenshot.Image) error {
	if s.opts.SaveDir != "" {
		if err := s.save(baseName+".png", img.PNG); err != nil {
			return err
		}
		if err := s.save(baseName+".txt", []byte(altText)); err != nil {
			return err
		}
	}
	if s.opts.Clipboard {
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.PNG)
		snippet := fmt.Sprintf(`<a href="%s"><img alt="%s" width="%d" height="%d" src="%s"></a>`,
			canonicalURL, html.EscapeString(altText), img.Width, img.Height, uri)
		if err := clipboard.WriteAll(snippet); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		s.log.Info("Copied image to clipboard", "url", canonicalURL)
	}
	return nil
}

// DeliverJSON emits the raw upstream payload, saved when a directory is
// configured and printed to stdout otherwise.
func (s *Sink) DeliverJSON(baseName string, raw []byte) error {
	if s.opts.SaveDir != "" {
		return s.save(baseName+".json", raw)
	}
	fmt.Println(string(raw))
	return nil
}

func (s *Sink) save(name string, data []byte) error {
	if err := os.MkdirAll(s.opts.SaveDir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	path := filepath.Join(s.opts.SaveDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.log.Info("Saved", "path", path)
	return nil
}
