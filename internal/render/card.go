package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	"post2embed/internal/domain"
	"post2embed/pkg/formatter"
)

// renderCard dispatches on the card kind. Poll-shaped cards reuse the meter
// markup against the card's fixed choice slots; photo and link cards become
// an anchor-wrapped preview. Unrecognized kinds contribute nothing.
func (a *Assembler) renderCard(ctx context.Context, card *domain.Card) (string, error) {
	switch card.Kind {
	case domain.CardPoll:
		return a.renderCardPoll(card), nil
	case domain.CardPhoto, domain.CardLink:
		return a.renderCardLink(ctx, card)
	default:
		a.log.Warn("Unrecognized card kind, skipping", "kind", card.Kind)
		return "", nil
	}
}

// renderCardPoll handles the legacy card-embedded poll with up to four
// fixed slots. Only labelled slots are emitted, in slot order, and only the
// first emitted slot is preceded by a separator rule.
func (a *Assembler) renderCardPoll(card *domain.Card) string {
	total := 0
	for _, c := range card.Choices {
		total += c.Votes
	}

	var sb strings.Builder
	emitted := 0
	for slot, c := range card.Choices {
		if c.Label == "" {
			continue
		}
		if emitted == 0 {
			sb.WriteString(`<hr class="social-embed-hr">`)
		}
		fmt.Fprintf(&sb,
			`<label for="poll_%d_count">%s: (%s)</label><br>`+
				`<meter class="social-embed-meter" id="poll_%d_count" min="0" max="100" low="33" high="66" value="%s">%d</meter><br>`,
			slot+1, c.Label, formatter.Number(a.locale, c.Votes),
			slot+1, percent(c.Votes, total), c.Votes)
		emitted++
	}

	return sb.String()
}

// renderCardLink assembles the photo/link preview: an optional inlined
// thumbnail, then provider, title and description lines. Absent fields
// contribute nothing, not even a line break.
func (a *Assembler) renderCardLink(ctx context.Context, card *domain.Card) (string, error) {
	thumbnail := ""
	if card.ThumbnailURL.Valid {
		uri, err := a.inliner.Inline(ctx, card.ThumbnailURL.String)
		if err != nil {
			return "", fmt.Errorf("inline card thumbnail: %w", err)
		}
		alt := ""
		if card.ThumbnailAlt.Valid {
			alt = html.EscapeString(card.ThumbnailAlt.String)
		}
		thumbnail = fmt.Sprintf(`<img src="%s" alt="%s" class="social-embed-media">`, uri, alt)
	}

	target := ""
	if card.TargetURL.Valid {
		target = card.TargetURL.String
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<a href="%s" class="social-embed-card">`, target)
	sb.WriteString(thumbnail)
	if card.ProviderName.Valid {
		sb.WriteString(card.ProviderName.String + "<br>")
	}
	if card.Title.Valid {
		sb.WriteString(card.Title.String + "<br>")
	}
	if card.Description.Valid {
		sb.WriteString(card.Description.String + "<br>")
	}
	sb.WriteString(`</a>`)

	return sb.String(), nil
}
