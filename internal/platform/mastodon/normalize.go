package mastodon

import (
	"github.com/guregu/null/v6"
	"github.com/tidwall/gjson"

	"post2embed/internal/domain"
)

// Normalize converts a status payload into the shared domain shape. The
// content field is instance-rendered HTML and is carried verbatim; entity
// spans never apply to this platform.
func Normalize(s gjson.Result) *domain.Post {
	account := s.Get("account")

	post := &domain.Post{
		Platform:     domain.PlatformMastodon,
		ID:           s.Get("id").String(),
		CanonicalURL: s.Get("url").String(),
		BodyText:     s.Get("content").String(),
		CreatedAt:    s.Get("created_at").String(),
		LikeCount:    int(s.Get("favourites_count").Int()),
		ReplyCount:   int(s.Get("replies_count").Int()),
		ShareCount:   int(s.Get("reblogs_count").Int()),
		Author: domain.Author{
			DisplayName: account.Get("display_name").String(),
			Handle:      account.Get("username").String(),
			AvatarURL:   account.Get("avatar").String(),
			ProfileURL:  account.Get("url").String(),
			AvatarShape: domain.AvatarCircle,
			IsAutomated: account.Get("bot").Bool(),
		},
	}

	if lang := s.Get("language"); lang.Exists() && lang.Type != gjson.Null {
		post.Language = null.StringFrom(lang.String())
	}

	// The attachments key is always present; an empty list stays a non-nil
	// empty slice so the renderer still emits the grid wrapper.
	if atts := s.Get("media_attachments"); atts.Exists() {
		post.Media = []domain.MediaAttachment{}
		for _, m := range atts.Array() {
			post.Media = append(post.Media, normalizeAttachment(m))
		}
	}

	if poll := s.Get("poll"); poll.Exists() && poll.Type != gjson.Null {
		p := &domain.Poll{TotalVotes: int(poll.Get("votes_count").Int())}
		for _, opt := range poll.Get("options").Array() {
			p.Options = append(p.Options, domain.PollOption{
				Label: opt.Get("title").String(),
				Votes: int(opt.Get("votes_count").Int()),
			})
		}
		post.Poll = p
	}

	if card := s.Get("card"); card.Exists() && card.Type != gjson.Null {
		post.Card = normalizeCard(card)
	}

	for _, e := range s.Get("emojis").Array() {
		post.Emojis = append(post.Emojis, domain.Emoji{
			Shortcode: e.Get("shortcode").String(),
			URL:       e.Get("url").String(),
		})
	}

	return post
}

func normalizeAttachment(m gjson.Result) domain.MediaAttachment {
	att := domain.MediaAttachment{
		PreviewURL: m.Get("preview_url").String(),
		FullURL:    m.Get("url").String(),
	}
	switch m.Get("type").String() {
	case "video", "gifv":
		att.Kind = domain.MediaVideo
	default:
		att.Kind = domain.MediaImage
	}
	if desc := m.Get("description"); desc.Exists() && desc.Type != gjson.Null {
		att.AltText = null.StringFrom(desc.String())
	}
	return att
}

func normalizeCard(card gjson.Result) *domain.Card {
	c := &domain.Card{}

	switch card.Get("type").String() {
	case "photo":
		c.Kind = domain.CardPhoto
	case "link":
		c.Kind = domain.CardLink
	default:
		// "video" and "rich" cards have no embeddable rendering here.
		c.Kind = domain.CardUnknown
		return c
	}

	if v := card.Get("provider_name"); v.Exists() && v.String() != "" {
		c.ProviderName = null.StringFrom(v.String())
	}
	if v := card.Get("title"); v.Exists() && v.String() != "" {
		c.Title = null.StringFrom(v.String())
	}
	if v := card.Get("description"); v.Exists() && v.String() != "" {
		c.Description = null.StringFrom(v.String())
	}
	if v := card.Get("image_description"); v.Exists() && v.String() != "" {
		c.ThumbnailAlt = null.StringFrom(v.String())
	}
	if v := card.Get("image"); v.Exists() && v.Type != gjson.Null {
		c.ThumbnailURL = null.StringFrom(v.String())
	}
	if v := card.Get("url"); v.Exists() {
		c.TargetURL = null.StringFrom(v.String())
	}

	return c
}
