package views

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
)

// Mempool renders the post index of one locale.
func Mempool(p MempoolPage) templ.Component {
	return page(func(_ context.Context, buf *bytes.Buffer) error {
		withLayout(buf, p.Layout, func(buf *bytes.Buffer) {
			buf.WriteString(`<h1 class="my-6 text-3xl font-bold">`)
			buf.WriteString(esc(p.Title))
			buf.WriteString("</h1>")
			if p.FeedURL != "" {
				buf.WriteString(`<p class="mb-6 text-sm"><a rel="alternate" type="application/rss+xml"`)
				attr(buf, "href", p.FeedURL)
				buf.WriteString(">RSS</a></p>")
			}
			if len(p.Posts) == 0 {
				buf.WriteString(`<p class="empty text-neutral-600">`)
				buf.WriteString(esc(p.Empty))
				buf.WriteString("</p>")
				return
			}
			buf.WriteString(`<ul class="posts space-y-6">`)
			for _, post := range p.Posts {
				buf.WriteString("<li><article>")
				buf.WriteString(`<h2 class="text-xl font-semibold"><a`)
				attr(buf, "href", post.Href)
				buf.WriteString(">")
				buf.WriteString(esc(post.Title))
				buf.WriteString("</a></h2>")
				if post.Date != "" {
					buf.WriteString(`<time class="text-sm text-neutral-500"`)
					attr(buf, "datetime", post.Date)
					buf.WriteString(">")
					buf.WriteString(esc(post.Date))
					buf.WriteString("</time>")
				}
				if post.Excerpt != "" {
					buf.WriteString(`<p class="mt-2">`)
					buf.WriteString(esc(post.Excerpt))
					buf.WriteString("</p>")
				}
				buf.WriteString("</article></li>")
			}
			buf.WriteString("</ul>")
		})
		return nil
	})
}

// Post renders a single Mempool post.
func Post(p PostPage) templ.Component {
	return page(func(_ context.Context, buf *bytes.Buffer) error {
		withLayout(buf, p.Layout, func(buf *bytes.Buffer) {
			buf.WriteString(`<article class="post prose max-w-none"><h1 class="my-6 text-3xl font-bold">`)
			buf.WriteString(esc(p.Title))
			buf.WriteString("</h1>")
			if p.Date != "" {
				buf.WriteString(`<time class="text-sm text-neutral-500"`)
				attr(buf, "datetime", p.Date)
				buf.WriteString(">")
				buf.WriteString(esc(p.Date))
				buf.WriteString("</time>")
			}
			buf.WriteString(`<div class="post-body mt-6">`)
			buf.WriteString(p.HTML)
			buf.WriteString("</div></article>")
			if p.Back.Href != "" {
				buf.WriteString(`<p class="mt-8"><a`)
				attr(buf, "href", p.Back.Href)
				buf.WriteString(">« ")
				buf.WriteString(esc(p.Back.Text))
				buf.WriteString("</a></p>")
			}
		})
		return nil
	})
}
