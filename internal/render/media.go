package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	"golang.org/x/sync/errgroup"

	"post2embed/internal/domain"
)

// renderMedia builds the media grid fragment. Previews are inlined
// concurrently because the downloads share no state, but the fragment keeps
// the attachments' input order. An empty attachment list still yields the
// wrapper element.
func (a *Assembler) renderMedia(ctx context.Context, attachments []domain.MediaAttachment) (string, error) {
	inlined := make([]string, len(attachments))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range attachments {
		g.Go(func() error {
			uri, err := a.inliner.Inline(gctx, m.PreviewURL)
			inlined[i] = uri
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("inline media previews: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`<div class="social-embed-media-grid">`)
	for i, m := range attachments {
		switch m.Kind {
		case domain.MediaVideo:
			// The poster is inlined; the video itself stays a remote
			// reference to the highest-quality variant.
			fmt.Fprintf(&sb,
				`<video class="social-embed-video" controls src="%s" poster="%s" width="550"></video>`,
				m.FullURL, inlined[i])
		case domain.MediaImage:
			alt := ""
			if m.AltText.Valid {
				alt = html.EscapeString(m.AltText.String)
			}
			fmt.Fprintf(&sb,
				`<a href="%s" class="social-embed-media-link"><img class="social-embed-media" alt="%s" src="%s"></a>`,
				m.FullURL, alt, inlined[i])
		}
	}
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
