package landing

import (
	"encoding/xml"

	"github.com/eringen/landing/locale"
	"github.com/eringen/landing/seo"
	"github.com/eringen/landing/urls"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string        `xml:"loc"`
	LastMod string        `xml:"lastmod,omitempty"`
	Links   []sitemapLink `xml:"xhtml:link"`
}

// sitemapLink is a hreflang alternate of a sitemap entry.
type sitemapLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// sitemap lists every localized page with its alternates. Mempool pages are
// included when the post store is available.
func (a *App) sitemap() (sitemapURLSet, error) {
	all := a.Locales.All()
	var entries []sitemapURL

	add := func(route urls.Route, params urls.Params, locales []locale.Locale, lastMod string) error {
		alts, err := seo.Hreflangs(locales, func(l locale.Locale) (string, error) {
			return a.URLs.Absolute(l, route, params)
		})
		if err != nil {
			return err
		}
		links := make([]sitemapLink, 0, len(alts)+1)
		for _, alt := range alts.Links() {
			links = append(links, sitemapLink{Rel: "alternate", Hreflang: alt.Hreflang, Href: alt.Href})
		}
		if href, ok := alts[a.Locales.Default()]; ok {
			links = append(links, sitemapLink{Rel: "alternate", Hreflang: "x-default", Href: href})
		}
		for _, l := range locales {
			entries = append(entries, sitemapURL{Loc: alts[l], LastMod: lastMod, Links: links})
		}
		return nil
	}

	if err := add(urls.Home, nil, all, ""); err != nil {
		return sitemapURLSet{}, err
	}
	if a.Store != nil {
		if err := add(urls.MempoolIndex, nil, all, ""); err != nil {
			return sitemapURLSet{}, err
		}
		seen := make(map[string]bool)
		for _, l := range all {
			posts, err := a.Store.ListPosts(l)
			if err != nil {
				return sitemapURLSet{}, err
			}
			for _, p := range posts {
				if seen[p.Slug] {
					continue
				}
				seen[p.Slug] = true
				locales, err := a.postLocales(p.Slug)
				if err != nil {
					return sitemapURLSet{}, err
				}
				if err := add(urls.MempoolPost, urls.Slug(p.Slug), locales, p.Date); err != nil {
					return sitemapURLSet{}, err
				}
			}
		}
	}

	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
		URLs:  entries,
	}, nil
}
