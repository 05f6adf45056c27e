package render

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"post2embed/internal/domain"
)

// fakeInliner turns every URL into a recognizable fake data URI so tests
// can assert which image landed where without any network traffic.
type fakeInliner struct{}

func (fakeInliner) Inline(_ context.Context, url string) (string, error) {
	return "data:test;" + url, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newTestAssembler() *Assembler {
	return &Assembler{
		inliner: fakeInliner{},
		log:     nopLogger{},
		locale:  language.English,
	}
}

func samplePost() *domain.Post {
	return &domain.Post{
		Platform:     domain.PlatformTwitter,
		ID:           "42",
		CanonicalURL: "https://twitter.com/alice/status/42",
		BodyText:     "Check #news",
		CreatedAt:    "2023-01-02T03:04:05Z",
		LikeCount:    3,
		Author: domain.Author{
			DisplayName: "Alice",
			Handle:      "alice",
			AvatarURL:   "https://pbs.example/avatar.jpg",
			ProfileURL:  "https://twitter.com/alice",
			AvatarShape: domain.AvatarCircle,
		},
		Entities: []domain.EntitySpan{
			{
				Kind:        domain.EntityHashtag,
				Start:       6,
				End:         11,
				Replacement: `<a href="https://twitter.com/hashtag/news">#news</a>`,
			},
		},
	}
}

func TestRenderPoll(t *testing.T) {
	a := newTestAssembler()
	got := a.renderPoll(&domain.Poll{
		Options: []domain.PollOption{
			{Label: "Yes", Votes: 600},
			{Label: "No", Votes: 400},
		},
		TotalVotes: 1000,
	})

	assert.True(t, strings.HasPrefix(got, `<hr class="social-embed-hr">`))
	assert.Contains(t, got, `<label for="poll_0">Yes: (600)</label>`)
	assert.Contains(t, got, `id="poll_0" min="0" max="100" low="33" high="66" value="60.0"`)
	assert.Contains(t, got, `<label for="poll_1">No: (400)</label>`)
	assert.Contains(t, got, `value="40.0"`)
}

func TestRenderPollZeroVotes(t *testing.T) {
	a := newTestAssembler()
	got := a.renderPoll(&domain.Poll{
		Options:    []domain.PollOption{{Label: "Lonely", Votes: 0}},
		TotalVotes: 0,
	})

	assert.Contains(t, got, `value="0"`)
}

func TestRenderCardPollSkipsEmptySlots(t *testing.T) {
	a := newTestAssembler()
	got := a.renderCardPoll(&domain.Card{
		Kind: domain.CardPoll,
		Choices: []domain.CardChoice{
			{Label: "Yes", Votes: 10},
			{},
			{Label: "No", Votes: 30},
			{},
		},
	})

	assert.Contains(t, got, `id="poll_1_count"`)
	assert.Contains(t, got, `id="poll_3_count"`)
	assert.NotContains(t, got, `id="poll_2_count"`)
	assert.Contains(t, got, `value="25.0"`)
	assert.Contains(t, got, `value="75.0"`)
	assert.Equal(t, 1, strings.Count(got, `<hr class="social-embed-hr">`))
	assert.True(t, strings.HasPrefix(got, `<hr class="social-embed-hr">`))
}

func TestRenderCardLink(t *testing.T) {
	a := newTestAssembler()
	got, err := a.renderCard(context.Background(), &domain.Card{
		Kind:         domain.CardPhoto,
		ProviderName: null.StringFrom("example.com"),
		Title:        null.StringFrom("A headline"),
		Description:  null.StringFrom("Some summary"),
		ThumbnailURL: null.StringFrom("https://img.example/thumb.jpg"),
		ThumbnailAlt: null.StringFrom(`An "image"`),
		TargetURL:    null.StringFrom("https://example.com/story"),
	})
	require.NoError(t, err)

	assert.Contains(t, got, `<a href="https://example.com/story" class="social-embed-card">`)
	assert.Contains(t, got, `src="data:test;https://img.example/thumb.jpg"`)
	assert.Contains(t, got, `alt="An &#34;image&#34;"`)
	assert.Contains(t, got, "example.com<br>")
	assert.Contains(t, got, "A headline<br>")
	assert.Contains(t, got, "Some summary<br>")
}

func TestRenderCardLinkOmitsAbsentFields(t *testing.T) {
	a := newTestAssembler()
	got, err := a.renderCard(context.Background(), &domain.Card{
		Kind:      domain.CardLink,
		Title:     null.StringFrom("Only a title"),
		TargetURL: null.StringFrom("https://example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(got, "<br>"))
	assert.NotContains(t, got, "<img")
}

func TestRenderCardUnknownKind(t *testing.T) {
	a := newTestAssembler()
	got, err := a.renderCard(context.Background(), &domain.Card{Kind: domain.CardUnknown})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderMediaKeepsOrder(t *testing.T) {
	a := newTestAssembler()
	got, err := a.renderMedia(context.Background(), []domain.MediaAttachment{
		{Kind: domain.MediaImage, PreviewURL: "https://img.example/a", FullURL: "https://img.example/a.jpg"},
		{Kind: domain.MediaVideo, PreviewURL: "https://img.example/b", FullURL: "https://video.example/b.mp4"},
		{Kind: domain.MediaImage, PreviewURL: "https://img.example/c", FullURL: "https://img.example/c.jpg"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, `<div class="social-embed-media-grid">`))
	posA := strings.Index(got, "data:test;https://img.example/a")
	posB := strings.Index(got, "data:test;https://img.example/b")
	posC := strings.Index(got, "data:test;https://img.example/c")
	assert.True(t, posA >= 0 && posA < posB && posB < posC)
}

func TestRenderMediaVideo(t *testing.T) {
	a := newTestAssembler()
	got, err := a.renderMedia(context.Background(), []domain.MediaAttachment{
		{Kind: domain.MediaVideo, PreviewURL: "https://img.example/poster", FullURL: "https://video.example/v.mp4"},
	})
	require.NoError(t, err)

	assert.Contains(t, got, `src="https://video.example/v.mp4"`)
	assert.Contains(t, got, `poster="data:test;https://img.example/poster"`)
	assert.Contains(t, got, "controls")
}

func TestAssembleEmptyMediaListKeepsWrapper(t *testing.T) {
	a := newTestAssembler()

	post := samplePost()
	post.Media = []domain.MediaAttachment{}
	_, doc, err := a.Assemble(context.Background(), post, domain.RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, doc, `<div class="social-embed-media-grid"></div>`)

	post = samplePost()
	post.Media = nil
	_, doc, err = a.Assemble(context.Background(), post, domain.RenderOptions{})
	require.NoError(t, err)
	assert.NotContains(t, doc, "social-embed-media-grid")
}

func TestSubstituteEmojis(t *testing.T) {
	a := newTestAssembler()
	got, err := a.substituteEmojis(context.Background(), "hello :wave: and :unknown:", []domain.Emoji{
		{Shortcode: "wave", URL: "https://emoji.example/wave.png"},
	})
	require.NoError(t, err)

	assert.Contains(t, got, `<img src="data:test;https://emoji.example/wave.png" alt=":wave:" class="social-embed-emoji">`)
	assert.Contains(t, got, ":unknown:")
}

func TestAssemble(t *testing.T) {
	a := newTestAssembler()
	url, doc, err := a.Assemble(context.Background(), samplePost(), domain.RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://twitter.com/alice/status/42", url)

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	card := parsed.Find("blockquote.social-embed")
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "social-embed-42", card.AttrOr("id", ""))
	assert.Equal(t, "Alice", card.Find(".social-embed-name").Text())
	assert.Equal(t, "@alice", card.Find(".social-embed-handle").Text())

	link := card.Find(`.social-embed-text a`)
	require.Equal(t, 1, link.Length())
	assert.Equal(t, "https://twitter.com/hashtag/news", link.AttrOr("href", ""))
	assert.Equal(t, "#news", link.Text())

	avatar := card.Find(".social-embed-avatar")
	assert.Equal(t, "data:test;https://pbs.example/avatar.jpg", avatar.AttrOr("src", ""))
	assert.True(t, avatar.HasClass("social-embed-avatar-circle"))

	// Absent counters default to zero, not to an omitted span.
	assert.Contains(t, card.Find(`.social-embed-counter[title="Likes"]`).Text(), "3")
	assert.Contains(t, card.Find(`.social-embed-counter[title="Replies"]`).Text(), "0")
	assert.Contains(t, card.Find(`.social-embed-counter[title="Reposts"]`).Text(), "0")
	timeEl := card.Find("time")
	assert.Equal(t, "2023-01-02T03:04:05Z", timeEl.AttrOr("datetime", ""))
	assert.Equal(t, "03:04 - Mon 02 January 2023", timeEl.Text())
}

func TestAssembleSchemaOrg(t *testing.T) {
	a := newTestAssembler()

	_, plain, err := a.Assemble(context.Background(), samplePost(), domain.RenderOptions{})
	require.NoError(t, err)
	assert.NotContains(t, plain, "itemscope")

	_, tagged, err := a.Assemble(context.Background(), samplePost(), domain.RenderOptions{SchemaOrg: true})
	require.NoError(t, err)
	assert.Contains(t, tagged, `itemtype="https://schema.org/SocialMediaPosting"`)
	assert.Contains(t, tagged, `itemprop="articleBody"`)
	assert.Contains(t, tagged, `itemprop="datePublished"`)
}

func TestAssembleThread(t *testing.T) {
	parent := samplePost()
	parent.ID = "41"
	parent.CanonicalURL = "https://twitter.com/bob/status/41"
	parent.BodyText = "The original take"
	parent.Entities = nil

	post := samplePost()
	post.Parent = parent

	a := newTestAssembler()

	_, solo, err := a.Assemble(context.Background(), post, domain.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(solo, "<header"))
	assert.NotContains(t, solo, "social-embed-thread")

	_, threaded, err := a.Assemble(context.Background(), post, domain.RenderOptions{ShowThread: true})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(threaded, "<header"))
	// The parent fragment comes before the post's own header.
	assert.Less(t, strings.Index(threaded, "social-embed-thread"), strings.Index(threaded, "<header"))
	assert.Contains(t, threaded, "The original take")
}

func TestAssembleQuote(t *testing.T) {
	quoted := samplePost()
	quoted.ID = "40"
	quoted.BodyText = "Quoted wisdom"
	quoted.Entities = nil

	post := samplePost()
	post.Quoted = quoted

	a := newTestAssembler()
	_, doc, err := a.Assemble(context.Background(), post, domain.RenderOptions{ShowThread: true})
	require.NoError(t, err)

	assert.Contains(t, doc, "social-embed-quote")
	assert.Contains(t, doc, "Quoted wisdom")
	// The quote nests inside the post body, after its own header.
	assert.Greater(t, strings.Index(doc, "social-embed-quote"), strings.Index(doc, "<header"))
}

func TestAssembleBreaksThreadCycles(t *testing.T) {
	post := samplePost()
	loop := samplePost()
	loop.Quoted = post
	post.Quoted = loop

	a := newTestAssembler()
	_, doc, err := a.Assemble(context.Background(), post, domain.RenderOptions{ShowThread: true})
	require.NoError(t, err)

	// Both posts share the ID, so the quote is dropped instead of recursing.
	assert.NotContains(t, doc, "social-embed-quote")
}

func TestAssembleReplyLineNeedsThread(t *testing.T) {
	post := samplePost()
	post.ReplyTo = &domain.ReplyTo{Handle: "bob", StatusID: null.StringFrom("41")}

	a := newTestAssembler()

	_, solo, err := a.Assemble(context.Background(), post, domain.RenderOptions{})
	require.NoError(t, err)
	assert.NotContains(t, solo, "Replying to")

	_, threaded, err := a.Assemble(context.Background(), post, domain.RenderOptions{ShowThread: true})
	require.NoError(t, err)
	assert.Contains(t, threaded, `<a href="https://twitter.com/bob/status/41">Replying to @bob</a>`)
}

func TestAssembleMastodonBody(t *testing.T) {
	post := samplePost()
	post.Platform = domain.PlatformMastodon
	post.BodyText = `<p>hello :wave:</p>`
	post.Entities = nil
	post.Emojis = []domain.Emoji{{Shortcode: "wave", URL: "https://emoji.example/wave.png"}}
	post.Language = null.StringFrom("en")

	a := newTestAssembler()
	_, doc, err := a.Assemble(context.Background(), post, domain.RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, doc, `lang="en"`)
	assert.Contains(t, doc, "<p>hello <img src=")
	assert.Contains(t, doc, `alt=":wave:"`)
}

func TestAssembleNewlinesBecomeBreaks(t *testing.T) {
	post := samplePost()
	post.BodyText = "line one\nline two"
	post.Entities = nil

	a := newTestAssembler()
	_, doc, err := a.Assemble(context.Background(), post, domain.RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, doc, "line one<br>line two")
}
