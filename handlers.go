package landing

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/eringen/landing/content"
	"github.com/eringen/landing/locale"
	"github.com/eringen/landing/urls"
	"github.com/eringen/landing/views"
)

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", handleStylesheet)
	e.Static("/public", a.Config.StaticDir)
	e.GET("/img/:name", a.handleImage)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.registry}))

	e.GET("/", a.handleRoot)
	e.GET("/:locale/", a.handleHome)

	if a.Store != nil {
		e.GET("/:locale/mempool/", a.handleMempool)
		e.GET("/:locale/mempool/feed.xml", a.handleFeed)
		e.GET("/:locale/mempool/:slug/", a.handlePost)
		e.GET("/api/posts/latest/:locale", a.handleAPILatest)
	}
}

// pathLocale resolves the :locale path parameter. Unsupported locales are
// a 404, not a redirect, so every page has exactly one URL.
func (a *App) pathLocale(c echo.Context) (locale.Locale, error) {
	loc, err := a.Locales.Parse(c.Param("locale"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}
	return loc, nil
}

func (a *App) handleRoot(c echo.Context) error {
	loc := a.preferredLocale(c)
	c.Response().Header().Add(echo.HeaderVary, "Accept-Language, Cookie")
	return c.Redirect(http.StatusFound, a.URLs.MustBuild(loc, urls.Home, nil))
}

func (a *App) handleHome(c echo.Context) error {
	loc, err := a.pathLocale(c)
	if err != nil {
		return err
	}
	page, err := a.Composer.Page(c.Request().Context(), loc)
	if err != nil {
		return err
	}
	a.rememberLocale(c, loc)
	return Render(c, views.Home(page))
}

func (a *App) handleMempool(c echo.Context) error {
	loc, err := a.pathLocale(c)
	if err != nil {
		return err
	}
	posts, err := a.Store.ListPosts(loc)
	if err != nil {
		return err
	}
	page, err := a.Composer.MempoolIndex(loc, posts)
	if err != nil {
		return err
	}
	return Render(c, views.Mempool(page))
}

func (a *App) handlePost(c echo.Context) error {
	loc, err := a.pathLocale(c)
	if err != nil {
		return err
	}
	post, err := a.Store.GetPost(loc, c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) || (err == nil && !post.Published) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	translations, err := a.postLocales(post.Slug)
	if err != nil {
		return err
	}
	page, err := a.Composer.Post(loc, post, translations)
	if err != nil {
		return err
	}
	return Render(c, views.Post(page))
}

// postLocales lists the supported locales slug is published in.
func (a *App) postLocales(slug string) ([]locale.Locale, error) {
	all, err := a.Store.Translations(slug)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, l := range all {
		if a.Locales.Contains(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (a *App) handleFeed(c echo.Context) error {
	loc, err := a.pathLocale(c)
	if err != nil {
		return err
	}
	feed, err := a.feed(loc)
	if err != nil {
		return err
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", feed)
}

func (a *App) handleSitemap(c echo.Context) error {
	sm, err := a.sitemap()
	if err != nil {
		return err
	}
	return writeXML(c, "application/xml; charset=utf-8", sm)
}

// handleAPILatest serves the store as a content API, so another instance
// can point its ContentAPI here. An empty locale answers 404.
func (a *App) handleAPILatest(c echo.Context) error {
	loc, err := a.pathLocale(c)
	if err != nil {
		return err
	}
	post, err := a.Store.Latest(c.Request().Context(), loc)
	if err != nil {
		return err
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no published posts")
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.robots())
}

func (a *App) robots() string {
	return fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s\n", a.URLs.Site("sitemap.xml"))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	loc := a.errorLocale(c)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.Composer.ErrorPage(loc, http.StatusNotFound)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("Server error")
		_ = RenderStatus(c, code, views.ServerError(a.Composer.ErrorPage(loc, code)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// errorLocale guesses the page locale from the first path segment.
func (a *App) errorLocale(c echo.Context) locale.Locale {
	first, _, _ := strings.Cut(strings.TrimPrefix(c.Request().URL.Path, "/"), "/")
	if loc, err := a.Locales.Parse(first); err == nil {
		return loc
	}
	return a.Locales.Default()
}
