package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// Home renders the localized landing page.
func Home(p HomePage) templ.Component {
	return page(func(_ context.Context, buf *bytes.Buffer) error {
		withLayout(buf, p.Layout, func(buf *bytes.Buffer) {
			writeHero(buf, p.Hero)
			if p.Newsletter != "" {
				buf.WriteString(`<p class="newsletter my-6 text-center text-lg">`)
				buf.WriteString(p.Newsletter)
				buf.WriteString("</p>")
			}
			for _, b := range p.Banners {
				buf.WriteString(`<p class="banner my-4 rounded bg-amber-100 px-4 py-3 text-amber-900">`)
				buf.WriteString(b)
				buf.WriteString("</p>")
			}
			sections := p.Sections
			if p.Latest != nil {
				sections = append([]Section{*p.Latest}, sections...)
			}
			if len(sections) > 0 {
				buf.WriteString(`<div class="sections mt-8 flex flex-wrap gap-6">`)
				for i, s := range sections {
					writeSection(buf, s, p.Latest != nil && i == 0)
				}
				buf.WriteString("</div>")
			}
		})
		return nil
	})
}

func writeHero(buf *bytes.Buffer, h Hero) {
	buf.WriteString(`<section class="hero flex flex-col items-center gap-6 py-8">`)
	if h.Image.Src != "" {
		writeImage(buf, h.Image, "hero-image max-w-full", true)
	}
	if h.Quote != "" {
		buf.WriteString(`<blockquote class="text-center text-2xl italic">`)
		buf.WriteString(esc(h.Quote))
		buf.WriteString("</blockquote>")
	}
	if h.CTA.Href != "" {
		buf.WriteString(`<a class="cta rounded bg-green-600 px-6 py-3 font-semibold text-white hover:bg-green-700" role="button"`)
		attr(buf, "href", h.CTA.Href)
		buf.WriteString(">")
		buf.WriteString(esc(h.CTA.Text))
		buf.WriteString("</a>")
	}
	buf.WriteString("</section>")
}

func writeSection(buf *bytes.Buffer, s Section, latest bool) {
	buf.WriteString(`<section class="`)
	if latest {
		buf.WriteString("latest-post ")
	}
	buf.WriteString(`home-section flex-1 basis-64">`)
	buf.WriteString(`<h2 class="mb-2 text-xl font-bold">`)
	buf.WriteString(esc(s.Title))
	buf.WriteString("</h2>")
	if s.Heading != "" {
		buf.WriteString(`<h3 class="mb-2 italic">`)
		buf.WriteString(esc(s.Heading))
		buf.WriteString("</h3>")
	}
	if s.Body != "" {
		buf.WriteString(`<p class="mb-4">`)
		buf.WriteString(esc(s.Body))
		buf.WriteString("</p>")
	}
	if s.Button.Href != "" {
		buf.WriteString(`<a class="inline-block rounded bg-blue-600 px-4 py-2 text-white hover:bg-blue-700" role="button"`)
		attr(buf, "href", s.Button.Href)
		buf.WriteString(">")
		buf.WriteString(esc(s.Button.Text))
		buf.WriteString(" »</a>")
	}
	buf.WriteString("</section>")
}
