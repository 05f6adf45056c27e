package render

import (
	"html/template"
)

// documentData feeds the outer card template. Fragment fields are already
// rendered markup; scalar fields are escaped by the template engine.
type documentData struct {
	SchemaOrg   bool
	Lang        string
	ID          string
	URL         template.URL
	ProfileURL  template.URL
	Avatar      template.URL
	AvatarShape string
	DisplayName string
	Handle      string
	Badge       template.HTML
	Parent      template.HTML
	Reply       template.HTML
	Body        template.HTML
	Media       template.HTML
	Poll        template.HTML
	Card        template.HTML
	Quoted      template.HTML
	Time        string
	ISOTime     string
	Likes       string
	Replies     string
	Shares      string
}

// The Schema.org attributes are purely additive; with SchemaOrg off the
// template emits exactly the same visible content.
var cardTemplate = template.Must(template.New("card").Parse(`<blockquote class="social-embed" id="social-embed-{{.ID}}"{{with .Lang}} lang="{{.}}"{{end}}{{if .SchemaOrg}} itemscope itemtype="https://schema.org/SocialMediaPosting"{{end}}>
{{if .SchemaOrg}}<meta itemprop="url" content="{{.URL}}">
{{end}}{{.Parent}}
<header class="social-embed-header"{{if .SchemaOrg}} itemprop="author" itemscope itemtype="https://schema.org/Person"{{end}}>
	<a href="{{.ProfileURL}}" class="social-embed-user">
		<img class="social-embed-avatar social-embed-avatar-{{.AvatarShape}}" src="{{.Avatar}}" alt=""{{if .SchemaOrg}} itemprop="image"{{end}}>
		<div class="social-embed-names">
			<span class="social-embed-name"{{if .SchemaOrg}} itemprop="name"{{end}}>{{.DisplayName}}</span>
			<span class="social-embed-handle">@{{.Handle}}</span>{{.Badge}}
		</div>
	</a>
</header>
<section class="social-embed-body">
	{{.Reply}}
	<p class="social-embed-text"{{if .SchemaOrg}} itemprop="articleBody"{{end}}>{{.Body}}</p>
	{{.Media}}{{.Poll}}{{.Card}}{{.Quoted}}
</section>
<footer class="social-embed-footer">
	<span class="social-embed-counter" title="Likes">&#10084;&#65039; {{.Likes}}</span>
	<span class="social-embed-counter" title="Replies">&#128172; {{.Replies}}</span>
	<span class="social-embed-counter" title="Reposts">&#128257; {{.Shares}}</span>
	<a class="social-embed-permalink" href="{{.URL}}"><time{{if .SchemaOrg}} itemprop="datePublished"{{end}} datetime="{{.ISOTime}}">{{.Time}}</time></a>
</footer>
</blockquote>`))
