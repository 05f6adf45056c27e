package domain

import (
	"github.com/guregu/null/v6"
)

// Platform identifies which upstream API a post was normalized from.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformMastodon Platform = "mastodon"
)

// AvatarShape is how the author's avatar should be cropped. Only the
// Twitter payload carries it; anything unrecognized falls back to Circle.
type AvatarShape string

const (
	AvatarCircle AvatarShape = "Circle"
	AvatarSquare AvatarShape = "Square"
)

// ParseAvatarShape maps the raw API value onto a known shape.
func ParseAvatarShape(raw string) AvatarShape {
	if raw == string(AvatarSquare) {
		return AvatarSquare
	}
	return AvatarCircle
}

// EntityKind tags an entity span with what it annotates.
type EntityKind string

const (
	EntityURL         EntityKind = "url"
	EntityHashtag     EntityKind = "hashtag"
	EntityMention     EntityKind = "mention"
	EntityInlineMedia EntityKind = "inline_media"
)

// EntitySpan is an annotation over a half-open [Start, End) range of the
// post body. Offsets are UTF-16 code-unit indices exactly as supplied by
// the upstream API; they are never re-derived locally.
type EntitySpan struct {
	Kind        EntityKind
	Start       int
	End         int
	Replacement string // markup that replaces body[Start:End]
}

// MediaKind distinguishes attachment types the renderers care about.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaAttachment is one item of a post's media grid.
type MediaAttachment struct {
	Kind       MediaKind
	PreviewURL string
	// FullURL is the click-through target for images, or the highest
	// fidelity variant for videos (last entry of the upstream list).
	FullURL string
	AltText null.String
}

// PollOption is a single poll choice with its vote count.
type PollOption struct {
	Label string
	Votes int
}

// Poll is a first-class poll attached to a post. TotalVotes comes from the
// upstream total where the API reports one, otherwise the sum of options.
type Poll struct {
	Options    []PollOption
	TotalVotes int
}

// CardKind is the preview-card flavour.
type CardKind string

const (
	CardPoll    CardKind = "poll"
	CardPhoto   CardKind = "photo"
	CardLink    CardKind = "link"
	CardUnknown CardKind = "unknown"
)

// CardChoice is one of the up-to-four fixed slots of a legacy poll card.
type CardChoice struct {
	Label string
	Votes int
}

// Card is a normalized link/photo/poll preview card. Poll cards populate
// Choices; photo and link cards use the flat fields, each independently
// optional.
type Card struct {
	Kind         CardKind
	Title        null.String
	Description  null.String
	ProviderName null.String
	ThumbnailURL null.String
	ThumbnailAlt null.String
	TargetURL    null.String
	Choices      []CardChoice
}

// Badge is an author label with an icon, e.g. a government account marker.
type Badge struct {
	Description string
	IconURL     string
}

// Author is the post author's identity as the card header needs it.
type Author struct {
	DisplayName string
	Handle      string
	AvatarURL   string
	ProfileURL  string
	AvatarShape AvatarShape
	IsAutomated bool   // Mastodon bot flag
	Badge       *Badge // Twitter highlighted label
}

// Emoji maps a :shortcode: occurring in the body to its image URL.
type Emoji struct {
	Shortcode string
	URL       string
}

// ReplyTo describes the post being replied to, when the payload says so.
type ReplyTo struct {
	Handle   string
	StatusID null.String // absent on older payloads
}

// Post is the single normalized shape every renderer consumes. It is
// constructed once by a platform normalizer and immutable afterwards.
type Post struct {
	Platform     Platform
	ID           string
	CanonicalURL string
	// BodyText is raw text plus entity offsets for Twitter, pre-rendered
	// trusted HTML for Mastodon.
	BodyText   string
	CreatedAt  string // platform-native timestamp string
	Language   null.String
	LikeCount  int
	ReplyCount int
	ShareCount int
	Author     Author
	Entities   []EntitySpan
	Media      []MediaAttachment
	Poll       *Poll
	Card       *Card
	Emojis     []Emoji
	ReplyTo    *ReplyTo
	Parent     *Post
	Quoted     *Post
}

// IsReply reports whether the post replies to another post.
func (p *Post) IsReply() bool {
	return p.ReplyTo != nil
}

// RenderOptions are the caller-level switches the assembler honours.
type RenderOptions struct {
	// ShowThread includes parent and quoted posts recursively.
	ShowThread bool
	// SchemaOrg attaches Schema.org metadata attributes. Additive only.
	SchemaOrg bool
}
