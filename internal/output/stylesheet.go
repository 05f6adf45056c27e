package output

// Stylesheet is the optional inline style block prepended to HTML output.
// Everything is scoped under .social-embed so the fragment can drop into an
// arbitrary page without leaking rules.
const Stylesheet = `<style>
.social-embed {
	all: unset;
	display: block;
	box-sizing: border-box;
	max-width: 550px;
	margin: 1em auto;
	padding: 1em;
	border: 1px solid #d0d7de;
	border-radius: 12px;
	font-family: system-ui, sans-serif;
	font-size: 1rem;
	line-height: 1.4;
	color: #0f1419;
	background: #fff;
}
.social-embed header {
	display: flex;
	align-items: center;
	gap: .6em;
	text-decoration: none;
	color: inherit;
}
.social-embed header img {
	width: 48px;
	height: 48px;
}
.social-embed-avatar-circle { border-radius: 50%; }
.social-embed-avatar-square { border-radius: 4px; }
.social-embed section { margin: .75em 0; overflow-wrap: break-word; }
.social-embed a { color: #1d9bf0; text-decoration: none; }
.social-embed a:hover { text-decoration: underline; }
.social-embed-media-grid {
	display: grid;
	grid-template-columns: repeat(2, 1fr);
	gap: 2px;
	border-radius: 12px;
	overflow: hidden;
}
.social-embed-media, .social-embed-video {
	max-width: 100%;
	height: auto;
	border-radius: 12px;
}
.social-embed-media-grid .social-embed-media { border-radius: 0; }
.social-embed-card {
	display: block;
	margin-top: .75em;
	padding: .75em;
	border: 1px solid #d0d7de;
	border-radius: 12px;
	color: inherit;
}
.social-embed-hr { border: 0; border-top: 1px solid #d0d7de; }
.social-embed-meter { width: 100%; }
.social-embed-emoji { height: 1.2em; vertical-align: text-bottom; }
.social-embed-badge { height: 1em; vertical-align: text-bottom; }
.social-embed-reply { color: #536471; }
.social-embed-thread, .social-embed-quote {
	margin: .75em 0;
	padding: .5em .75em;
	border: 1px solid #d0d7de;
	border-radius: 12px;
}
.social-embed footer { color: #536471; font-size: .9em; }
.social-embed footer a { color: inherit; }
</style>`
