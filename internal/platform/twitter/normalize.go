package twitter

import (
	"fmt"

	"github.com/guregu/null/v6"
	"github.com/tidwall/gjson"

	"post2embed/internal/domain"
)

// Normalize converts one syndication payload (or a nested parent/quote
// payload) into the shared domain shape. Optional fields that are absent
// from a given payload variant normalize to their documented defaults.
func Normalize(t gjson.Result) *domain.Post {
	user := t.Get("user")
	handle := user.Get("screen_name").String()
	id := t.Get("id_str").String()

	post := &domain.Post{
		Platform:     domain.PlatformTwitter,
		ID:           id,
		CanonicalURL: fmt.Sprintf("https://twitter.com/%s/status/%s", handle, id),
		BodyText:     t.Get("text").String(),
		CreatedAt:    t.Get("created_at").String(),
		LikeCount:    int(t.Get("favorite_count").Int()),
		ReplyCount:   int(t.Get("conversation_count").Int()),
		ShareCount:   int(t.Get("retweet_count").Int()),
	}
	if lang := t.Get("lang"); lang.Exists() {
		post.Language = null.StringFrom(lang.String())
	}

	post.Author = domain.Author{
		DisplayName: user.Get("name").String(),
		Handle:      handle,
		AvatarURL:   user.Get("profile_image_url_https").String(),
		ProfileURL:  "https://twitter.com/" + handle,
		AvatarShape: domain.ParseAvatarShape(user.Get("profile_image_shape").String()),
	}
	if label := user.Get("highlighted_label"); label.Exists() {
		post.Author.Badge = &domain.Badge{
			Description: label.Get("description").String(),
			IconURL:     label.Get("badge.url").String(),
		}
	}

	post.Entities = normalizeEntities(t.Get("entities"))
	post.Media = normalizeMedia(t.Get("mediaDetails"))

	if card := t.Get("card"); card.Exists() {
		post.Card = normalizeCard(card)
	}

	if replyTo := t.Get("in_reply_to_screen_name"); replyTo.Exists() {
		rt := &domain.ReplyTo{Handle: replyTo.String()}
		// Older payloads carry the screen name but not the status ID.
		if sid := t.Get("in_reply_to_status_id_str").String(); sid != "" {
			rt.StatusID = null.StringFrom(sid)
		}
		post.ReplyTo = rt
	}

	if parent := t.Get("parent"); parent.Exists() {
		post.Parent = Normalize(parent)
	}
	if quoted := t.Get("quoted_tweet"); quoted.Exists() {
		post.Quoted = Normalize(quoted)
	}

	return post
}

// normalizeEntities flattens the per-kind entity lists into spans carrying
// ready-made replacement markup. The upstream order (urls, hashtags,
// mentions, media) is preserved; the renderer stable-sorts by offset.
func normalizeEntities(entities gjson.Result) []domain.EntitySpan {
	var spans []domain.EntitySpan

	for _, u := range entities.Get("urls").Array() {
		spans = append(spans, domain.EntitySpan{
			Kind:  domain.EntityURL,
			Start: int(u.Get("indices.0").Int()),
			End:   int(u.Get("indices.1").Int()),
			// Link straight to the expanded URL, bypassing the shortener.
			Replacement: fmt.Sprintf(`<a href="%s">%s</a>`,
				u.Get("expanded_url").String(), u.Get("display_url").String()),
		})
	}

	for _, h := range entities.Get("hashtags").Array() {
		text := h.Get("text").String()
		spans = append(spans, domain.EntitySpan{
			Kind:  domain.EntityHashtag,
			Start: int(h.Get("indices.0").Int()),
			End:   int(h.Get("indices.1").Int()),
			Replacement: fmt.Sprintf(`<a href="https://twitter.com/hashtag/%s">#%s</a>`,
				text, text),
		})
	}

	for _, m := range entities.Get("user_mentions").Array() {
		name := m.Get("screen_name").String()
		spans = append(spans, domain.EntitySpan{
			Kind:  domain.EntityMention,
			Start: int(m.Get("indices.0").Int()),
			End:   int(m.Get("indices.1").Int()),
			Replacement: fmt.Sprintf(`<a href="https://twitter.com/%s">@%s</a>`,
				name, name),
		})
	}

	for _, m := range entities.Get("media").Array() {
		spans = append(spans, domain.EntitySpan{
			Kind:  domain.EntityInlineMedia,
			Start: int(m.Get("indices.0").Int()),
			End:   int(m.Get("indices.1").Int()),
			Replacement: fmt.Sprintf(`<a href="%s">%s</a>`,
				m.Get("expanded_url").String(), m.Get("display_url").String()),
		})
	}

	return spans
}

// A present-but-empty mediaDetails list still yields a non-nil slice; the
// renderer distinguishes "no media key" from "empty media list".
func normalizeMedia(details gjson.Result) []domain.MediaAttachment {
	if !details.Exists() {
		return nil
	}
	media := []domain.MediaAttachment{}

	for _, m := range details.Array() {
		base := m.Get("media_url_https").String()
		att := domain.MediaAttachment{
			Kind:       domain.MediaImage,
			PreviewURL: base + ":small",
			FullURL:    base,
		}
		if alt := m.Get("ext_alt_text"); alt.Exists() {
			att.AltText = null.StringFrom(alt.String())
		}
		if info := m.Get("video_info"); info.Exists() {
			att.Kind = domain.MediaVideo
			// Last variant is the highest quality the endpoint exposes.
			variants := info.Get("variants").Array()
			if len(variants) > 0 {
				att.FullURL = variants[len(variants)-1].Get("url").String()
			}
		}
		media = append(media, att)
	}

	return media
}

var pollCardNames = map[string]bool{
	"poll2choice_text_only": true,
	"poll3choice_text_only": true,
	"poll4choice_text_only": true,
}

// normalizeCard maps the legacy binding-values card onto the flat domain
// card. Poll cards keep their four fixed slots, empty labels included, so
// the renderer sees the original slot numbering.
func normalizeCard(card gjson.Result) *domain.Card {
	name := card.Get("name").String()
	bindings := card.Get("binding_values")

	if pollCardNames[name] {
		choices := make([]domain.CardChoice, 4)
		for i := range choices {
			label := bindings.Get(fmt.Sprintf("choice%d_label.string_value", i+1))
			if !label.Exists() {
				continue
			}
			choices[i] = domain.CardChoice{
				Label: label.String(),
				Votes: int(bindings.Get(fmt.Sprintf("choice%d_count.string_value", i+1)).Int()),
			}
		}
		return &domain.Card{Kind: domain.CardPoll, Choices: choices}
	}

	if name == "summary_large_image" {
		c := &domain.Card{Kind: domain.CardPhoto}
		if v := bindings.Get("vanity_url.string_value"); v.Exists() {
			c.ProviderName = null.StringFrom(v.String())
		}
		if v := bindings.Get("title.string_value"); v.Exists() {
			c.Title = null.StringFrom(v.String())
		}
		if v := bindings.Get("description.string_value"); v.Exists() {
			c.Description = null.StringFrom(v.String())
		}
		if v := bindings.Get("summary_photo_image_alt_text.string_value"); v.Exists() {
			c.ThumbnailAlt = null.StringFrom(v.String())
		}
		if v := bindings.Get("thumbnail_image.image_value.url"); v.Exists() {
			c.ThumbnailURL = null.StringFrom(v.String())
		}
		if v := card.Get("url"); v.Exists() {
			c.TargetURL = null.StringFrom(v.String())
		}
		return c
	}

	return &domain.Card{Kind: domain.CardUnknown}
}
