// Package landing serves a localized landing page with Echo and templ.
//
// Each supported locale gets its own page under /{locale}/ with hreflang
// alternates to every other locale. The only dynamic data is the latest
// Mempool post, read either from a remote content API or from the local
// SQLite post store, which also backs the Mempool pages and RSS feeds.
package landing

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/eringen/landing/content"
	"github.com/eringen/landing/i18n"
	"github.com/eringen/landing/locale"
	"github.com/eringen/landing/seo"
	"github.com/eringen/landing/urls"
)

const shutdownTimeout = 10 * time.Second

// App is the central landing application. It wires together the locale
// set, link table, catalog, post source, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Logger   zerolog.Logger
	Locales  locale.Set
	URLs     *urls.Builder
	Catalog  *i18n.Catalog
	Composer *Composer
	// Store is nil when posts come from a remote content API; the Mempool
	// pages, feeds and content API are then not served.
	Store *content.Store

	fetcher       content.Fetcher
	registry      *prometheus.Registry
	images        *IPLimiter
	ownsStore     bool
	sessionSecret []byte
}

// New validates cfg, opens the post source and registers middleware and
// routes. Call Close when done.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Logger: zerolog.Nop(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) init() error {
	var err error
	a.Locales, err = locale.NewSet(a.Config.Locales...)
	if err != nil {
		return fmt.Errorf("landing: locales: %w", err)
	}

	a.URLs, err = urls.New(urls.Config{
		BaseURL:     a.Config.URL,
		CDNURL:      a.Config.CDNURL,
		SubstackURL: a.Config.SubstackURL,
		Locales:     a.Locales,
	})
	if err != nil {
		return err
	}

	a.Catalog, err = i18n.LoadEmbedded(a.Locales,
		i18n.WithStrict(a.Config.StrictTranslations),
		i18n.WithLogger(a.Logger.With().Str("sys", "i18n").Logger()),
	)
	if err != nil {
		return fmt.Errorf("landing: load translations: %w", err)
	}

	if a.Store == nil && a.Config.ContentAPI == "" {
		a.Store, err = content.NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("landing: init store: %w", err)
		}
		a.ownsStore = true
	}

	fetcher := a.fetcher
	switch {
	case fetcher != nil:
	case a.Config.ContentAPI != "":
		fetcher, err = content.NewClient(a.Config.ContentAPI, a.Config.ContentTimeout)
		if err != nil {
			return fmt.Errorf("landing: content api: %w", err)
		}
	default:
		fetcher = a.Store
	}
	a.fetcher, err = content.NewInstrumented(fetcher, a.registry, a.Logger.With().Str("sys", "content").Logger())
	if err != nil {
		return fmt.Errorf("landing: register content metrics: %w", err)
	}

	a.Composer = NewComposer(seo.Site{
		Name:        a.Config.Name,
		URL:         a.URLs.Site(),
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}, a.URLs, a.Catalog, a.fetcher, ComposerOptions{
		Responsive: a.Config.ResponsiveImages,
		Feeds:      a.Store != nil,
	})

	a.images = NewIPLimiter(a.Config.ImageRate, a.Config.ImageBurst, 10*time.Minute)

	a.sessionSecret = []byte(a.Config.SessionSecret)
	if len(a.sessionSecret) == 0 {
		a.sessionSecret = make([]byte, 32)
		if _, err := rand.Read(a.sessionSecret); err != nil {
			return fmt.Errorf("landing: session secret: %w", err)
		}
		a.Logger.Warn().Msg("No session secret configured; locale preferences reset on restart")
	}
	return nil
}

// Start serves HTTP on Config.Addr until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Start(ctx context.Context) error {
	stopSweep := a.images.Start(ctx)
	defer stopSweep()

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.Config.Addr).Strs("locales", a.Config.Locales).Msg("Listening")
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("landing: shutdown: %w", err)
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil && a.ownsStore {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
