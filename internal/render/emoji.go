package render

import (
	"context"
	"fmt"
	"strings"

	"post2embed/internal/domain"
)

// substituteEmojis replaces every :shortcode: occurrence that has a mapping
// with an inlined emoji image. Shortcodes without a mapping stay literal
// text.
func (a *Assembler) substituteEmojis(ctx context.Context, body string, emojis []domain.Emoji) (string, error) {
	for _, e := range emojis {
		uri, err := a.inliner.Inline(ctx, e.URL)
		if err != nil {
			return "", fmt.Errorf("inline emoji %q: %w", e.Shortcode, err)
		}
		img := fmt.Sprintf(`<img src="%s" alt=":%s:" class="social-embed-emoji">`, uri, e.Shortcode)
		body = strings.ReplaceAll(body, ":"+e.Shortcode+":", img)
	}
	return body, nil
}
