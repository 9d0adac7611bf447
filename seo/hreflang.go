// Package seo produces the head metadata for localized pages: hreflang
// alternates, canonical links, OpenGraph and JSON-LD.
package seo

import (
	"fmt"
	"sort"

	"github.com/eringen/landing/locale"
)

// HreflangMap maps each locale to the URL of its variant of a page.
type HreflangMap map[locale.Locale]string

// Alternate is one <link rel="alternate" hreflang=... href=...> entry.
type Alternate struct {
	Hreflang string
	Href     string
}

// Hreflangs calls build once per locale and collects the results. The first
// error aborts generation and no partial map is returned.
func Hreflangs(locales []locale.Locale, build func(locale.Locale) (string, error)) (HreflangMap, error) {
	out := make(HreflangMap, len(locales))
	for _, l := range locales {
		href, err := build(l)
		if err != nil {
			return nil, fmt.Errorf("hreflang %s: %w", l, err)
		}
		out[l] = href
	}
	return out, nil
}

// Links returns the alternates sorted by hreflang so markup is stable.
func (m HreflangMap) Links() []Alternate {
	out := make([]Alternate, 0, len(m))
	for l, href := range m {
		out = append(out, Alternate{Hreflang: l.String(), Href: href})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hreflang < out[j].Hreflang })
	return out
}
