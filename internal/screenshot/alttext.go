package screenshot

import (
	"fmt"
	"strings"

	"post2embed/internal/domain"
)

// BuildAltText flattens a post (and, when threading is on, its parent and
// quoted post) into a single line of descriptive text for the screenshot.
func BuildAltText(post *domain.Post, showThread bool) string {
	var b strings.Builder
	b.WriteString("Screenshot from Twitter. ")

	if showThread && post.Parent != nil {
		b.WriteString(postAlt(post.Parent))
		b.WriteString(" Reply ")
	}

	b.WriteString(postAlt(post))

	if showThread && post.Quoted != nil {
		b.WriteString(" Quoting: ")
		b.WriteString(postAlt(post.Quoted))
	}

	return strings.ReplaceAll(b.String(), "\n", " ")
}

func postAlt(p *domain.Post) string {
	text := p.BodyText
	for _, m := range p.Media {
		if m.AltText.Valid {
			text += " . Image: " + m.AltText.String
		}
	}
	return fmt.Sprintf("%s. %s (@%s). %s.", p.CreatedAt, p.Author.DisplayName, p.Author.Handle, text)
}
