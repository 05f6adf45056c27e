package render

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"post2embed/internal/domain"
	"post2embed/pkg/formatter"
)

// timeLayout is the human-readable footer timestamp format.
const timeLayout = "15:04 - Mon 02 January 2006"

// Assemble renders post into a self-contained HTML card and returns the
// canonical URL together with the composed document. The post is assumed to
// have passed upstream shape validation; missing required scalars surface
// as errors rather than being papered over.
func (a *Assembler) Assemble(ctx context.Context, post *domain.Post, opts domain.RenderOptions) (string, string, error) {
	doc, err := a.assemble(ctx, post, opts, 0, map[string]bool{})
	if err != nil {
		return "", "", err
	}
	return post.CanonicalURL, doc, nil
}

func (a *Assembler) assemble(ctx context.Context, post *domain.Post, opts domain.RenderOptions, depth int, seen map[string]bool) (string, error) {
	if post.ID != "" {
		seen[post.ID] = true
	}

	parentHTML := ""
	quotedHTML := ""
	if opts.ShowThread && post.Parent != nil {
		frag, err := a.nested(ctx, post.Parent, opts, depth, seen)
		if err != nil {
			return "", err
		}
		if frag != "" {
			parentHTML = `<div class="social-embed-thread">` + frag + `</div>`
		}
	}
	if opts.ShowThread && post.Quoted != nil {
		frag, err := a.nested(ctx, post.Quoted, opts, depth, seen)
		if err != nil {
			return "", err
		}
		if frag != "" {
			quotedHTML = `<div class="social-embed-quote">` + frag + `</div>`
		}
	}

	body := post.BodyText
	switch post.Platform {
	case domain.PlatformTwitter:
		body = ResolveEntities(body, post.Entities)
		body = strings.ReplaceAll(body, "\n", "<br>")
	case domain.PlatformMastodon:
		// Content arrives pre-rendered from the instance and is trusted
		// verbatim; only emoji shortcodes need substitution.
		var err error
		body, err = a.substituteEmojis(ctx, body, post.Emojis)
		if err != nil {
			return "", err
		}
	}

	badge, err := a.renderBadge(ctx, &post.Author)
	if err != nil {
		return "", err
	}

	reply := ""
	if opts.ShowThread && post.IsReply() {
		reply = renderReplyLine(post.ReplyTo)
	}

	mediaHTML := ""
	// A non-nil empty list still gets the grid wrapper; only an absent
	// media key omits the fragment entirely.
	if post.Media != nil {
		mediaHTML, err = a.renderMedia(ctx, post.Media)
		if err != nil {
			return "", err
		}
	}

	pollHTML := ""
	if post.Poll != nil {
		pollHTML = a.renderPoll(post.Poll)
	}

	cardHTML := ""
	if post.Card != nil {
		cardHTML, err = a.renderCard(ctx, post.Card)
		if err != nil {
			return "", err
		}
	}

	avatar, err := a.inliner.Inline(ctx, post.Author.AvatarURL)
	if err != nil {
		return "", fmt.Errorf("inline avatar: %w", err)
	}

	created, err := dateparse.ParseAny(post.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("parse timestamp %q: %w", post.CreatedAt, err)
	}

	data := documentData{
		SchemaOrg:   opts.SchemaOrg,
		Lang:        post.Language.ValueOrZero(),
		ID:          post.ID,
		URL:         template.URL(post.CanonicalURL),
		ProfileURL:  template.URL(post.Author.ProfileURL),
		Avatar:      template.URL(avatar),
		AvatarShape: strings.ToLower(string(post.Author.AvatarShape)),
		DisplayName: post.Author.DisplayName,
		Handle:      post.Author.Handle,
		Badge:       template.HTML(badge),
		Parent:      template.HTML(parentHTML),
		Reply:       template.HTML(reply),
		Body:        template.HTML(body),
		Media:       template.HTML(mediaHTML),
		Poll:        template.HTML(pollHTML),
		Card:        template.HTML(cardHTML),
		Quoted:      template.HTML(quotedHTML),
		Time:        created.Format(timeLayout),
		ISOTime:     created.Format(time.RFC3339),
		Likes:       formatter.Number(a.locale, post.LikeCount),
		Replies:     formatter.Number(a.locale, post.ReplyCount),
		Shares:      formatter.Number(a.locale, post.ShareCount),
	}

	var sb strings.Builder
	if err := cardTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute card template: %w", err)
	}
	return sb.String(), nil
}

// nested assembles a parent or quoted post one level down. Depth and
// visited-ID guards make adversarial cycles degrade to an omitted fragment
// instead of unbounded recursion.
func (a *Assembler) nested(ctx context.Context, sub *domain.Post, opts domain.RenderOptions, depth int, seen map[string]bool) (string, error) {
	if depth+1 >= maxThreadDepth {
		a.log.Warn("Thread nesting too deep, skipping", "id", sub.ID, "depth", depth+1)
		return "", nil
	}
	if sub.ID != "" && seen[sub.ID] {
		a.log.Warn("Thread cycle detected, skipping", "id", sub.ID)
		return "", nil
	}
	return a.assemble(ctx, sub, opts, depth+1, seen)
}

// renderBadge produces the author's label line: a highlighted label with an
// inlined icon on Twitter, a static automation marker on Mastodon, nothing
// otherwise.
func (a *Assembler) renderBadge(ctx context.Context, author *domain.Author) (string, error) {
	if author.Badge != nil {
		icon, err := a.inliner.Inline(ctx, author.Badge.IconURL)
		if err != nil {
			return "", fmt.Errorf("inline badge icon: %w", err)
		}
		return fmt.Sprintf(`<br><img src="%s" alt="" class="social-embed-badge"> %s`,
			icon, html.EscapeString(author.Badge.Description)), nil
	}
	if author.IsAutomated {
		return `<br>&#129302; Automated`, nil
	}
	return "", nil
}

func renderReplyLine(r *domain.ReplyTo) string {
	link := "https://twitter.com/" + r.Handle
	if r.StatusID.Valid {
		link += "/status/" + r.StatusID.String
	}
	return fmt.Sprintf(`<small class="social-embed-reply"><a href="%s">Replying to @%s</a></small>`, link, r.Handle)
}
