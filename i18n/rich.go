package i18n

import (
	"html"
	"strings"
)

// Element is the pre-rendered element a rich-text tag expands to. Only
// links are needed by the site.
type Element struct {
	Href  string
	Class string
}

func (e Element) open() string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(e.Href))
	b.WriteString(`"`)
	if e.Class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(e.Class))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

// Rich renders a translated string containing inline tags such as
// "Sign up for our <a>newsletter</a>." into HTML. Each <name>…</name> pair
// whose name has an entry in elements becomes that element; all text is
// escaped. Tags without an element, unclosed tags and stray brackets are
// kept as escaped literal text.
func Rich(text string, elements map[string]Element) string {
	var b strings.Builder
	for len(text) > 0 {
		lt := strings.IndexByte(text, '<')
		if lt < 0 {
			b.WriteString(html.EscapeString(text))
			break
		}
		b.WriteString(html.EscapeString(text[:lt]))
		text = text[lt:]

		name, inner, rest, ok := cutTag(text)
		if !ok {
			b.WriteString(html.EscapeString("<"))
			text = text[1:]
			continue
		}
		el, known := elements[name]
		if !known {
			b.WriteString(html.EscapeString(text[:len(text)-len(rest)]))
			text = rest
			continue
		}
		b.WriteString(el.open())
		b.WriteString(html.EscapeString(inner))
		b.WriteString("</a>")
		text = rest
	}
	return b.String()
}

// cutTag splits "<name>inner</name>rest". s must start with '<'.
func cutTag(s string) (name, inner, rest string, ok bool) {
	gt := strings.IndexByte(s, '>')
	if gt < 2 {
		return "", "", "", false
	}
	name = s[1:gt]
	if !isTagName(name) {
		return "", "", "", false
	}
	closing := "</" + name + ">"
	body := s[gt+1:]
	end := strings.Index(body, closing)
	if end < 0 {
		return "", "", "", false
	}
	return name, body[:end], body[end+len(closing):], true
}

func isTagName(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}
