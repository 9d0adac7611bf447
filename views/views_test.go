package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/landing/seo"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func testLayout() Layout {
	return Layout{
		Meta: seo.Metadata{
			Title:       "Site <Home>",
			Description: "About \"us\"",
			Canonical:   "https://example.org/es/",
			Locale:      "es",
			Alternates: seo.HreflangMap{
				"es": "https://example.org/es/",
				"en": "https://example.org/en/",
			},
			XDefault: "https://example.org/en/",
			OG:       seo.OpenGraph{Title: "Site", Type: "website", Locale: "es"},
			JSONLD:   []string{`{"@type":"WebSite"}`},
		},
		Lang:     "es",
		Dir:      "ltr",
		SiteName: "Site",
		HomeHref: "/es/",
		Nav:      []Link{{Text: "Mempool", Href: "/es/mempool/"}},
		Languages: []LanguageLink{
			{Hreflang: "en", Label: "English", Href: "/en/"},
			{Hreflang: "es", Label: "Español", Href: "/es/", Active: true},
		},
		CSSHref: "/public/site.css",
	}
}

func TestLayoutHead(t *testing.T) {
	out := render(t, Home(HomePage{Layout: testLayout()}))

	assert.True(t, strings.HasPrefix(out, `<!DOCTYPE html><html lang="es" dir="ltr">`))
	assert.Contains(t, out, "<title>Site &lt;Home&gt;</title>")
	assert.Contains(t, out, `<meta name="description" content="About &#34;us&#34;">`)
	assert.Contains(t, out, `<link rel="canonical" href="https://example.org/es/">`)
	assert.Contains(t, out, `<script type="application/ld+json">{"@type":"WebSite"}</script>`)
	assert.Contains(t, out, `<meta property="og:type" content="website">`)
	assert.NotContains(t, out, "og:image")

	en := strings.Index(out, `hreflang="en" href="https://example.org/en/"`)
	es := strings.Index(out, `hreflang="es" href="https://example.org/es/"`)
	xd := strings.Index(out, `hreflang="x-default" href="https://example.org/en/"`)
	require.True(t, en > 0 && es > 0 && xd > 0, out)
	assert.Less(t, en, es)
	assert.Less(t, es, xd)
}

func TestLanguageSwitcher(t *testing.T) {
	out := render(t, Home(HomePage{Layout: testLayout()}))
	assert.Contains(t, out, `<a rel="alternate" hreflang="en" lang="en" href="/en/">English</a>`)
	assert.Contains(t, out, `aria-current="true" lang="es">Español</span>`)

	l := testLayout()
	l.Languages = l.Languages[:1]
	out = render(t, Home(HomePage{Layout: l}))
	assert.NotContains(t, out, `aria-label="language"`)
}

func TestHomeLatestSection(t *testing.T) {
	p := HomePage{
		Layout:     testLayout(),
		Hero:       Hero{Image: Image{Src: "/public/hero.webp", Alt: "hero", Width: 960, Height: 540}, Quote: "q", CTA: Link{Text: "Read", Href: "/es/library/bitcoin/"}},
		Newsletter: `Join <a href="https://news.example.org">us</a>`,
		Banners:    []string{"one", "two", "three"},
		Sections:   []Section{{Title: "Podcast", Body: "b", Button: Link{Text: "See", Href: "/es/podcast/"}}},
	}

	out := render(t, Home(p))
	assert.NotContains(t, out, "latest-post")
	assert.Contains(t, out, `Join <a href="https://news.example.org">us</a>`)
	assert.Equal(t, 3, strings.Count(out, `class="banner `))
	assert.Contains(t, out, `fetchpriority="high"`)
	assert.Contains(t, out, `href="/es/library/bitcoin/">Read</a>`)

	p.Latest = &Section{Title: "Mempool", Heading: "<Post>", Button: Link{Text: "Leer", Href: "/es/mempool/post/"}}
	out = render(t, Home(p))
	assert.Contains(t, out, `<section class="latest-post home-section`)
	assert.Contains(t, out, "&lt;Post&gt;")
	assert.Less(t, strings.Index(out, "latest-post"), strings.Index(out, "Podcast"))
}

func TestPostAndMempool(t *testing.T) {
	out := render(t, Post(PostPage{Layout: testLayout(), Title: "T", Date: "2024-01-02", HTML: "<p>body</p>", Back: Link{Text: "Mempool", Href: "/es/mempool/"}}))
	assert.Contains(t, out, `<div class="post-body mt-6"><p>body</p></div>`)
	assert.Contains(t, out, `<time class="text-sm text-neutral-500" datetime="2024-01-02">`)

	out = render(t, Mempool(MempoolPage{Layout: testLayout(), Title: "Mempool", Empty: "Nothing yet"}))
	assert.Contains(t, out, "Nothing yet")

	out = render(t, Mempool(MempoolPage{Layout: testLayout(), Title: "Mempool", FeedURL: "/es/mempool/feed.xml", Posts: []PostItem{{Title: "A", Href: "/es/mempool/a/"}}}))
	assert.Contains(t, out, `<a href="/es/mempool/a/">A</a>`)
	assert.Contains(t, out, `type="application/rss+xml" href="/es/mempool/feed.xml"`)
}

func TestErrorPages(t *testing.T) {
	out := render(t, NotFound(ErrorPage{SiteName: "Site", HomeHref: "/en/"}))
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<h1 class=\"text-6xl font-bold\">404</h1>")
	assert.Contains(t, out, `noindex`)

	assert.Contains(t, out, "Page not found")

	out = render(t, ServerError(ErrorPage{SiteName: "Site", Lang: "de", Message: "Etwas ist schiefgelaufen"}))
	assert.Contains(t, out, `<html lang="de">`)
	assert.Contains(t, out, "500")
	assert.Contains(t, out, `<p class="my-6 text-lg">Etwas ist schiefgelaufen</p>`)
	assert.NotContains(t, out, "Something went wrong")
}
