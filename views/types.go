package views

import "github.com/eringen/landing/seo"

// Link is a text + href pair; Href always comes from the URL builder.
type Link struct {
	Text string
	Href string
}

// LanguageLink is one entry of the language switcher.
type LanguageLink struct {
	Hreflang string
	Label    string // endonym, e.g. "Español"
	Href     string
	Active   bool
}

// Layout carries the page chrome shared by every localized page.
type Layout struct {
	Meta      seo.Metadata
	Lang      string
	Dir       string
	SiteName  string
	HomeHref  string
	Nav       []Link
	Languages []LanguageLink
	CSSHref   string
	Footer    []Link
}

// Image is an <img> with optional responsive sources.
type Image struct {
	Src    string
	SrcSet string
	Alt    string
	Width  int
	Height int
}

// Hero is the top banner with the white paper call to action.
type Hero struct {
	Image Image
	Quote string
	CTA   Link
}

// Section is a teaser block in the bottom grid.
type Section struct {
	Title   string
	Heading string // optional italic sub-heading (post title)
	Body    string
	Button  Link
}

// HomePage is the composed landing page document. Rich-text fields hold
// HTML produced by i18n.Rich, which escapes all translated text.
type HomePage struct {
	Layout     Layout
	Hero       Hero
	Newsletter string
	Banners    []string
	Latest     *Section // nil when the locale has no post
	Sections   []Section
}

// ErrorPage is the minimal view model for 404 and 500 pages, which may be
// rendered without a resolved locale.
type ErrorPage struct {
	SiteName string
	Lang     string
	HomeHref string
	CSSHref  string
	// Message is the translated explanation under the status code.
	Message string
}

// PostItem is one entry of the Mempool index.
type PostItem struct {
	Title   string
	Date    string
	Excerpt string
	Href    string
}

// MempoolPage lists the published posts of one locale.
type MempoolPage struct {
	Layout  Layout
	Title   string
	FeedURL string
	Posts   []PostItem
	Empty   string
}

// PostPage is a single Mempool post. HTML is sanitized markdown output.
type PostPage struct {
	Layout Layout
	Title  string
	Date   string
	HTML   string
	Back   Link
}
