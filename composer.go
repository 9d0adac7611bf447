package landing

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language/display"

	"github.com/eringen/landing/content"
	"github.com/eringen/landing/i18n"
	"github.com/eringen/landing/locale"
	"github.com/eringen/landing/seo"
	"github.com/eringen/landing/urls"
	"github.com/eringen/landing/views"
)

const (
	heroImage       = "/img/blockchain.png"
	heroImageWidth  = 480
	heroImageHeight = 240
	stylesheet      = "/site.css"
)

// StaticParam is one page to pre-render.
type StaticParam struct {
	Locale locale.Locale
}

// Composer assembles localized page documents from the link table, the
// translation catalog and one latest-post fetch. It holds no mutable state.
type Composer struct {
	site       seo.Site
	urls       *urls.Builder
	catalog    *i18n.Catalog
	fetcher    content.Fetcher
	opts       ComposerOptions
}

// ComposerOptions toggles markup that depends on what this instance serves.
type ComposerOptions struct {
	// Responsive adds srcset candidates served by the image resize
	// endpoint to the hero image.
	Responsive bool
	// Feeds links the Mempool RSS feed from the footer. Only set it when
	// the feed routes are registered.
	Feeds bool
}

// NewComposer returns a Composer.
func NewComposer(site seo.Site, b *urls.Builder, cat *i18n.Catalog, f content.Fetcher, opts ComposerOptions) *Composer {
	return &Composer{site: site, urls: b, catalog: cat, fetcher: f, opts: opts}
}

// StaticParams lists one entry per supported locale, in set order.
func (c *Composer) StaticParams() []StaticParam {
	all := c.urls.Locales().All()
	out := make([]StaticParam, len(all))
	for i, l := range all {
		out[i] = StaticParam{Locale: l}
	}
	return out
}

// Metadata returns the head metadata of the landing page in loc, with one
// hreflang alternate per supported locale.
func (c *Composer) Metadata(loc locale.Locale) (seo.Metadata, error) {
	return c.metadata(loc, urls.Home, nil)
}

func (c *Composer) metadata(loc locale.Locale, route urls.Route, params urls.Params) (seo.Metadata, error) {
	canonical, err := c.urls.Absolute(loc, route, params)
	if err != nil {
		return seo.Metadata{}, fmt.Errorf("landing: metadata: %w", err)
	}
	set := c.urls.Locales()
	alternates, err := seo.Hreflangs(set.All(), func(l locale.Locale) (string, error) {
		return c.urls.Absolute(l, route, params)
	})
	if err != nil {
		return seo.Metadata{}, fmt.Errorf("landing: metadata: %w", err)
	}
	t := c.catalog.For(loc)
	name := t.T(c.site.Name)
	desc := t.T(c.site.Description)
	return seo.Metadata{
		Title:       name,
		Description: desc,
		Canonical:   canonical,
		Locale:      loc,
		Alternates:  alternates,
		XDefault:    alternates[set.Default()],
		OG: seo.OpenGraph{
			Title:    name,
			Type:     "website",
			URL:      canonical,
			Image:    c.absoluteAsset(heroImage),
			SiteName: name,
			Locale:   seo.OGLocale(loc),
		},
		JSONLD: []string{seo.WebsiteJsonLD(seo.Site{
			Name:        name,
			URL:         c.site.URL,
			Description: desc,
			Author:      c.site.Author,
		}, canonical, loc.String())},
	}, nil
}

// absoluteAsset resolves a CDN asset to an absolute URL for crawlers.
func (c *Composer) absoluteAsset(p string) string {
	u := c.urls.CDN(p)
	if strings.HasPrefix(u, "/") {
		return strings.TrimSuffix(c.urls.Site(), "/") + u
	}
	return u
}

// layout builds the page chrome shared by every localized page.
func (c *Composer) layout(loc locale.Locale, meta seo.Metadata) views.Layout {
	t := c.catalog.For(loc)
	b := c.urls
	var langs []views.LanguageLink
	for _, l := range b.Locales().All() {
		langs = append(langs, views.LanguageLink{
			Hreflang: l.String(),
			Label:    endonym(l),
			Href:     b.MustBuild(l, urls.Home, nil),
			Active:   l == loc,
		})
	}
	footer := []views.Link{{Text: "Substack", Href: b.MustBuild(loc, urls.Substack, nil)}}
	if c.opts.Feeds {
		footer = append(footer, views.Link{Text: "RSS", Href: b.MustBuild(loc, urls.MempoolFeed, nil)})
	}
	return views.Layout{
		Meta:     meta,
		Lang:     loc.String(),
		Dir:      loc.Dir(),
		SiteName: t.T(c.site.Name),
		HomeHref: b.MustBuild(loc, urls.Home, nil),
		Nav: []views.Link{
			{Text: t.T("Library"), Href: b.MustBuild(loc, urls.LibraryDoc, urls.Slug("bitcoin"))},
			{Text: t.T("Mempool"), Href: b.MustBuild(loc, urls.MempoolIndex, nil)},
			{Text: t.T("Podcast"), Href: b.MustBuild(loc, urls.PodcastIndex, nil)},
			{Text: t.T("Donate"), Href: b.MustBuild(loc, urls.DonateIndex, nil)},
		},
		Languages: langs,
		CSSHref:   b.CDN(stylesheet),
		Footer:    footer,
	}
}

// Page composes the landing page for loc. It performs exactly one latest-post
// fetch; an absent post omits the teaser and a fetch error is returned as is.
func (c *Composer) Page(ctx context.Context, loc locale.Locale) (views.HomePage, error) {
	meta, err := c.Metadata(loc)
	if err != nil {
		return views.HomePage{}, err
	}
	latest, err := c.fetcher.Latest(ctx, loc)
	if err != nil {
		return views.HomePage{}, err
	}

	t := c.catalog.For(loc)
	b := c.urls
	bold := func(r urls.Route) map[string]i18n.Element {
		return map[string]i18n.Element{"a": {Href: b.MustBuild(loc, r, nil), Class: "font-bold"}}
	}

	hero := views.Image{
		Src:    b.CDN(heroImage),
		Alt:    "Blockchain",
		Width:  heroImageWidth,
		Height: heroImageHeight,
	}
	if c.opts.Responsive {
		hero.SrcSet = fmt.Sprintf("%s?w=%d %dw, %s?w=%d %dw",
			heroImage, heroImageWidth/2, heroImageWidth/2, heroImage, heroImageWidth, heroImageWidth)
	}

	p := views.HomePage{
		Layout: c.layout(loc, meta),
		Hero: views.Hero{
			Image: hero,
			Quote: t.T("I've been working on a new electronic cash system that's fully peer-to-peer, with no trusted third party..."),
			CTA: views.Link{
				Text: t.T("Read Satoshi's White Paper"),
				Href: b.MustBuild(loc, urls.LibraryDoc, urls.Slug("bitcoin")),
			},
		},
		Newsletter: t.Rich("Sign up for our <a>newsletter</a> to receive email updates.",
			map[string]i18n.Element{"a": {Href: b.MustBuild(loc, urls.Substack, nil)}}),
		Banners: []string{
			t.Rich("Check out the original code and website for Hal Finney's <a>Reusable Proofs of Work</a>", bold(urls.FinneyRPOW)),
			t.Rich("Pay respect to visionary prognosticators at <a>The Skeptics: A Tribute to Bold Assertions</a>", bold(urls.Skeptics)),
			t.Rich("Read the <a>Crash Course in Bitcoin Political Economy</a>", bold(urls.CrashCourse)),
		},
		Sections: []views.Section{
			{
				Title:  t.T("Podcast"),
				Body:   t.T("The Crypto-Mises Podcast offers commentary on Bitcoin, economics, cryptography, and current events."),
				Button: views.Link{Text: t.T("See episodes"), Href: b.MustBuild(loc, urls.PodcastIndex, nil)},
			},
			{
				Title:  t.T("Support"),
				Body:   t.T("You can help us achieve our goals by donating today. Bitcoins only."),
				Button: views.Link{Text: t.T("Donate"), Href: b.MustBuild(loc, urls.DonateIndex, nil)},
			},
		},
	}
	if latest != nil {
		href, err := b.Build(loc, urls.MempoolPost, urls.Slug(latest.Slug))
		if err != nil {
			return views.HomePage{}, fmt.Errorf("landing: latest post link: %w", err)
		}
		p.Latest = &views.Section{
			Title:   t.T("Mempool"),
			Heading: latest.Title,
			Body:    latest.Excerpt,
			Button:  views.Link{Text: t.T("Read more"), Href: href},
		}
	}
	return p, nil
}

// MempoolIndex composes the post list of loc.
func (c *Composer) MempoolIndex(loc locale.Locale, posts []content.Post) (views.MempoolPage, error) {
	meta, err := c.metadata(loc, urls.MempoolIndex, nil)
	if err != nil {
		return views.MempoolPage{}, err
	}
	t := c.catalog.For(loc)
	meta.Title = t.T("Mempool") + " · " + meta.Title
	items := make([]views.PostItem, 0, len(posts))
	for _, p := range posts {
		href, err := c.urls.Build(loc, urls.MempoolPost, urls.Slug(p.Slug))
		if err != nil {
			return views.MempoolPage{}, fmt.Errorf("landing: post link: %w", err)
		}
		items = append(items, views.PostItem{Title: p.Title, Date: p.Date, Excerpt: p.Excerpt, Href: href})
	}
	return views.MempoolPage{
		Layout:  c.layout(loc, meta),
		Title:   t.T("Mempool"),
		FeedURL: c.urls.MustBuild(loc, urls.MempoolFeed, nil),
		Posts:   items,
		Empty:   t.T("No posts yet."),
	}, nil
}

// Post composes a single post page. Alternates cover only the locales the
// post is published in.
func (c *Composer) Post(loc locale.Locale, post content.Post, translations []locale.Locale) (views.PostPage, error) {
	params := urls.Slug(post.Slug)
	canonical, err := c.urls.Absolute(loc, urls.MempoolPost, params)
	if err != nil {
		return views.PostPage{}, fmt.Errorf("landing: post: %w", err)
	}
	alternates, err := seo.Hreflangs(translations, func(l locale.Locale) (string, error) {
		return c.urls.Absolute(l, urls.MempoolPost, params)
	})
	if err != nil {
		return views.PostPage{}, fmt.Errorf("landing: post: %w", err)
	}
	body, err := content.RenderMarkdown(post.Content)
	if err != nil {
		return views.PostPage{}, fmt.Errorf("landing: render post %s: %w", post.Slug, err)
	}
	t := c.catalog.For(loc)
	name := t.T(c.site.Name)
	meta := seo.Metadata{
		Title:       post.Title + " · " + name,
		Description: post.Excerpt,
		Canonical:   canonical,
		Locale:      loc,
		Alternates:  alternates,
		OG: seo.OpenGraph{
			Title:    post.Title,
			Type:     "article",
			URL:      canonical,
			SiteName: name,
			Locale:   seo.OGLocale(loc),
		},
		JSONLD: []string{seo.BlogPostingJsonLD(seo.Site{Name: name, URL: c.site.URL}, canonical, post.Title, post.Excerpt, post.Date)},
	}
	return views.PostPage{
		Layout: c.layout(loc, meta),
		Title:  post.Title,
		Date:   post.Date,
		HTML:   body,
		Back:   views.Link{Text: t.T("Back to Mempool"), Href: c.urls.MustBuild(loc, urls.MempoolIndex, nil)},
	}, nil
}

// ErrorPage is the view model for an error response with status in loc.
// A locale outside the set uses the default locale.
func (c *Composer) ErrorPage(loc locale.Locale, status int) views.ErrorPage {
	if !c.urls.Locales().Contains(loc) {
		loc = c.urls.Locales().Default()
	}
	t := c.catalog.For(loc)
	msg := t.T("Something went wrong")
	if status == http.StatusNotFound {
		msg = t.T("Page not found")
	}
	return views.ErrorPage{
		SiteName: t.T(c.site.Name),
		Lang:     loc.String(),
		HomeHref: c.urls.MustBuild(loc, urls.Home, nil),
		CSSHref:  c.urls.CDN(stylesheet),
		Message:  msg,
	}
}

// endonym is the language's name in itself, e.g. "Español".
func endonym(l locale.Locale) string {
	tag := l.Tag()
	name := display.Self.Name(tag)
	if name == "" {
		return l.String()
	}
	return cases.Title(tag).String(name)
}
