package landing

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/landing/locale"
	"github.com/eringen/landing/urls"
	"github.com/eringen/landing/views"
)

const exportConcurrency = 4

// Export pre-renders every page listed by StaticParams into outDir, plus
// the sitemap, robots.txt and the stylesheet. With a post store it also
// writes the Mempool pages and feeds. A failing page aborts the export.
func (a *App) Export(ctx context.Context, outDir string) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)

	written := make(chan string, 64)
	done := make(chan int)
	go func() {
		n := 0
		for p := range written {
			a.Logger.Debug().Str("path", p).Msg("Exported")
			n++
		}
		done <- n
	}()

	write := exportWriter{outDir: outDir, written: written}.write

	for _, p := range a.Composer.StaticParams() {
		loc := p.Locale
		g.Go(func() error {
			page, err := a.Composer.Page(ctx, loc)
			if err != nil {
				return fmt.Errorf("export %s: %w", loc, err)
			}
			return a.exportPage(ctx, write, a.URLs.MustBuild(loc, urls.Home, nil), views.Home(page))
		})
		if a.Store != nil {
			g.Go(func() error { return a.exportMempool(ctx, write, loc) })
		}
	}

	g.Go(func() error {
		sm, err := a.sitemap()
		if err != nil {
			return fmt.Errorf("export sitemap: %w", err)
		}
		data, err := marshalXML(sm)
		if err != nil {
			return err
		}
		if err := write("/sitemap.xml", data); err != nil {
			return err
		}
		if err := write("/robots.txt", []byte(a.robots())); err != nil {
			return err
		}
		if strings.HasPrefix(a.URLs.CDN(stylesheet), "/") {
			return write(a.URLs.CDN(stylesheet), siteCSS)
		}
		return nil
	})

	err := g.Wait()
	close(written)
	n := <-done
	return n, err
}

// exportWriter maps site paths to files under outDir. A path ending in "/"
// becomes index.html in that directory.
type exportWriter struct {
	outDir  string
	written chan<- string
}

func (w exportWriter) write(rel string, data []byte) error {
	clean, err := url.PathUnescape(rel)
	if err != nil {
		return fmt.Errorf("export %s: %w", rel, err)
	}
	for _, seg := range strings.Split(clean, "/") {
		if seg == "." || seg == ".." || strings.Contains(seg, `\`) {
			return fmt.Errorf("export %s: invalid path segment %q", rel, seg)
		}
	}
	dst := filepath.Join(w.outDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if strings.HasSuffix(clean, "/") {
		dst = filepath.Join(dst, "index.html")
	}
	inside, err := filepath.Rel(w.outDir, dst)
	if err != nil || inside == "." || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return fmt.Errorf("export %s: path escapes output directory", rel)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	w.written <- dst
	return nil
}

func (a *App) exportMempool(ctx context.Context, write func(string, []byte) error, loc locale.Locale) error {
	posts, err := a.Store.ListPosts(loc)
	if err != nil {
		return fmt.Errorf("export mempool %s: %w", loc, err)
	}
	index, err := a.Composer.MempoolIndex(loc, posts)
	if err != nil {
		return err
	}
	if err := a.exportPage(ctx, write, a.URLs.MustBuild(loc, urls.MempoolIndex, nil), views.Mempool(index)); err != nil {
		return err
	}

	feed, err := a.feed(loc)
	if err != nil {
		return err
	}
	data, err := marshalXML(feed)
	if err != nil {
		return err
	}
	if err := write(a.URLs.MustBuild(loc, urls.MempoolFeed, nil), data); err != nil {
		return err
	}

	for _, p := range posts {
		translations, err := a.postLocales(p.Slug)
		if err != nil {
			return err
		}
		page, err := a.Composer.Post(loc, p, translations)
		if err != nil {
			return err
		}
		rel, err := a.URLs.Build(loc, urls.MempoolPost, urls.Slug(p.Slug))
		if err != nil {
			return err
		}
		if err := a.exportPage(ctx, write, rel, views.Post(page)); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) exportPage(ctx context.Context, write func(string, []byte) error, rel string, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render %s: %w", rel, err)
	}
	return write(rel, buf.Bytes())
}

func marshalXML(v any) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
