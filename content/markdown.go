package content

import (
	"bytes"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	mdOnce    sync.Once
	md        goldmark.Markdown
	ugcPolicy *bluemonday.Policy
)

func markdownRenderer() (goldmark.Markdown, *bluemonday.Policy) {
	mdOnce.Do(func() {
		md = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
		ugcPolicy = bluemonday.UGCPolicy()
		ugcPolicy.RequireNoFollowOnFullyQualifiedLinks(true)
		ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return md, ugcPolicy
}

// RenderMarkdown converts a post body to HTML. Raw HTML in the source is
// dropped by the sanitizer, so the result is safe to embed as is.
func RenderMarkdown(src string) (string, error) {
	m, p := markdownRenderer()
	var buf bytes.Buffer
	if err := m.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return p.Sanitize(buf.String()), nil
}

// excerptLen is the rune limit of derived excerpts.
const excerptLen = 200

// Excerpt derives a plain-text teaser from a post body: the text of the
// first paragraph, cut at a word boundary after at most max runes.
func Excerpt(src string, max int) (string, error) {
	html, err := RenderMarkdown(src)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	text := strings.Join(strings.Fields(doc.Find("p").First().Text()), " ")
	if utf8.RuneCountInString(text) <= max {
		return text, nil
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if runes[max] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,.;:") + "…", nil
}
