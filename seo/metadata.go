package seo

import (
	"golang.org/x/text/language"

	"github.com/eringen/landing/locale"
)

// Metadata is everything the layout renders into <head> for one page.
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	Locale      locale.Locale
	Alternates  HreflangMap
	XDefault    string // href for hreflang="x-default"; empty omits it
	OG          OpenGraph
	JSONLD      []string
}

// OpenGraph carries og:* properties.
type OpenGraph struct {
	Title    string
	Type     string // "website" or "article"
	URL      string
	Image    string
	SiteName string
	Locale   string
}

// OGLocale converts a BCP 47 tag to the underscore form OpenGraph expects,
// e.g. "pt-BR" -> "pt_BR". Regions only inferred by likely-subtags ("en" ->
// "US") are left out.
func OGLocale(l locale.Locale) string {
	tag := l.Tag()
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf != language.Exact {
		return base.String()
	}
	return base.String() + "_" + region.String()
}
