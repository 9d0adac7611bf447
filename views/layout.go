// Package views renders the site's pages as templ components.
package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// page returns a component that buffers fn's output and writes it in one
// call, so a failing render never leaves half a document on the wire.
func page(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

func attr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" ")
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(esc(value))
	buf.WriteString(`"`)
}

func meta(buf *bytes.Buffer, key, name, content string) {
	if content == "" {
		return
	}
	buf.WriteString("<meta")
	attr(buf, key, name)
	attr(buf, "content", content)
	buf.WriteString(">")
}

func writeHead(buf *bytes.Buffer, l Layout) {
	m := l.Meta
	buf.WriteString(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	buf.WriteString("<title>")
	buf.WriteString(esc(m.Title))
	buf.WriteString("</title>")
	meta(buf, "name", "description", m.Description)
	if m.Canonical != "" {
		buf.WriteString(`<link rel="canonical"`)
		attr(buf, "href", m.Canonical)
		buf.WriteString(">")
	}
	for _, alt := range m.Alternates.Links() {
		buf.WriteString(`<link rel="alternate"`)
		attr(buf, "hreflang", alt.Hreflang)
		attr(buf, "href", alt.Href)
		buf.WriteString(">")
	}
	if m.XDefault != "" {
		buf.WriteString(`<link rel="alternate" hreflang="x-default"`)
		attr(buf, "href", m.XDefault)
		buf.WriteString(">")
	}
	meta(buf, "property", "og:title", m.OG.Title)
	meta(buf, "property", "og:type", m.OG.Type)
	meta(buf, "property", "og:url", m.OG.URL)
	meta(buf, "property", "og:image", m.OG.Image)
	meta(buf, "property", "og:site_name", m.OG.SiteName)
	meta(buf, "property", "og:locale", m.OG.Locale)
	for _, ld := range m.JSONLD {
		// encoding/json escapes '<', so the block cannot close the script early.
		buf.WriteString(`<script type="application/ld+json">`)
		buf.WriteString(ld)
		buf.WriteString("</script>")
	}
	if l.CSSHref != "" {
		buf.WriteString(`<link rel="stylesheet"`)
		attr(buf, "href", l.CSSHref)
		buf.WriteString(">")
	}
	buf.WriteString("</head>")
}

func writeHeader(buf *bytes.Buffer, l Layout) {
	buf.WriteString(`<header class="mb-6 border-b border-neutral-200 py-4"><nav class="flex flex-wrap items-center gap-4">`)
	buf.WriteString(`<a class="text-xl font-semibold text-neutral-900"`)
	attr(buf, "href", l.HomeHref)
	buf.WriteString(">")
	buf.WriteString(esc(l.SiteName))
	buf.WriteString("</a>")
	for _, n := range l.Nav {
		buf.WriteString(`<a class="text-neutral-700 hover:text-neutral-900"`)
		attr(buf, "href", n.Href)
		buf.WriteString(">")
		buf.WriteString(esc(n.Text))
		buf.WriteString("</a>")
	}
	if len(l.Languages) > 1 {
		buf.WriteString(`<ul class="ms-auto flex gap-2 text-sm" aria-label="language">`)
		for _, lang := range l.Languages {
			buf.WriteString("<li>")
			if lang.Active {
				buf.WriteString(`<span class="font-bold" aria-current="true"`)
				attr(buf, "lang", lang.Hreflang)
				buf.WriteString(">")
				buf.WriteString(esc(lang.Label))
				buf.WriteString("</span>")
			} else {
				buf.WriteString(`<a rel="alternate"`)
				attr(buf, "hreflang", lang.Hreflang)
				attr(buf, "lang", lang.Hreflang)
				attr(buf, "href", lang.Href)
				buf.WriteString(">")
				buf.WriteString(esc(lang.Label))
				buf.WriteString("</a>")
			}
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
	}
	buf.WriteString("</nav></header>")
}

func writeFooter(buf *bytes.Buffer, l Layout) {
	buf.WriteString(`<footer class="mt-12 border-t border-neutral-200 py-6 text-center text-sm text-neutral-600">`)
	for i, f := range l.Footer {
		if i > 0 {
			buf.WriteString(" · ")
		}
		buf.WriteString("<a")
		attr(buf, "href", f.Href)
		buf.WriteString(">")
		buf.WriteString(esc(f.Text))
		buf.WriteString("</a>")
	}
	buf.WriteString("</footer>")
}

// withLayout wraps body in the localized document shell.
func withLayout(buf *bytes.Buffer, l Layout, body func(*bytes.Buffer)) {
	buf.WriteString("<!DOCTYPE html><html")
	attr(buf, "lang", l.Lang)
	attr(buf, "dir", l.Dir)
	buf.WriteString(">")
	writeHead(buf, l)
	buf.WriteString(`<body class="bg-white"><div class="container mx-auto max-w-5xl px-4">`)
	writeHeader(buf, l)
	buf.WriteString("<main>")
	body(buf)
	buf.WriteString("</main>")
	writeFooter(buf, l)
	buf.WriteString("</div></body></html>")
}

func writeImage(buf *bytes.Buffer, img Image, class string, priority bool) {
	buf.WriteString("<img")
	attr(buf, "class", class)
	attr(buf, "src", img.Src)
	if img.SrcSet != "" {
		attr(buf, "srcset", img.SrcSet)
		attr(buf, "sizes", "(max-width: 480px) 100vw, "+strconv.Itoa(img.Width)+"px")
	}
	if img.Width > 0 {
		attr(buf, "width", strconv.Itoa(img.Width))
	}
	if img.Height > 0 {
		attr(buf, "height", strconv.Itoa(img.Height))
	}
	attr(buf, "alt", img.Alt)
	if priority {
		buf.WriteString(` fetchpriority="high"`)
	} else {
		buf.WriteString(` loading="lazy"`)
	}
	buf.WriteString(` decoding="async">`)
}
