package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// NotFound renders the 404 page.
func NotFound(p ErrorPage) templ.Component {
	if p.Message == "" {
		p.Message = "Page not found"
	}
	return errorPage(p, "404")
}

// ServerError renders the 500 page. It never shows error details.
func ServerError(p ErrorPage) templ.Component {
	if p.Message == "" {
		p.Message = "Something went wrong"
	}
	return errorPage(p, "500")
}

func errorPage(p ErrorPage, code string) templ.Component {
	return page(func(_ context.Context, buf *bytes.Buffer) error {
		lang := p.Lang
		if lang == "" {
			lang = "en"
		}
		buf.WriteString("<!DOCTYPE html><html")
		attr(buf, "lang", lang)
		buf.WriteString(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><meta name="robots" content="noindex">`)
		buf.WriteString("<title>")
		buf.WriteString(esc(code + " · " + p.SiteName))
		buf.WriteString("</title>")
		if p.CSSHref != "" {
			buf.WriteString(`<link rel="stylesheet"`)
			attr(buf, "href", p.CSSHref)
			buf.WriteString(">")
		}
		buf.WriteString(`</head><body class="bg-white"><main class="container mx-auto max-w-xl px-4 py-24 text-center">`)
		buf.WriteString(`<h1 class="text-6xl font-bold">`)
		buf.WriteString(code)
		buf.WriteString(`</h1><p class="my-6 text-lg">`)
		buf.WriteString(esc(p.Message))
		buf.WriteString("</p>")
		if p.HomeHref != "" {
			buf.WriteString("<a")
			attr(buf, "href", p.HomeHref)
			buf.WriteString(">")
			buf.WriteString(esc(p.SiteName))
			buf.WriteString("</a>")
		}
		buf.WriteString("</main></body></html>")
		return nil
	})
}
