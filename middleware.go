package landing

import (
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/landing/locale"
)

const (
	sessionName      = "landing_prefs"
	sessionLocaleKey = "locale"
	// localeCookie is set by the client-side language switcher of the
	// previous site; it is honoured when no session preference exists.
	localeCookie = "NEXT_LOCALE"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := a.Logger.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = a.Logger.Error().Err(v.Error)
			}
			ev.Str("sys", "http").
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "landing",
		Registerer: a.registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/public/") || strings.HasPrefix(p, "/img/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/public") ||
				strings.HasPrefix(p, "/api/") ||
				strings.HasPrefix(p, "/img/") ||
				p == "/metrics" ||
				path.Ext(p) != ""
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		switch {
		case strings.HasPrefix(p, "/public/") || strings.HasPrefix(p, "/img/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case p == "/sitemap.xml" || p == "/robots.txt" || strings.HasSuffix(p, "/feed.xml"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case p == "/" || p == "/metrics" || strings.HasPrefix(p, "/api/"):
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore(a.sessionSecret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 365,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// preferredLocale negotiates the locale for a request that carries none in
// its path: session preference, then the locale cookie, then
// Accept-Language, then the default locale.
func (a *App) preferredLocale(c echo.Context) locale.Locale {
	var prefs []string
	if sess, err := session.Get(sessionName, c); err == nil {
		if v, ok := sess.Values[sessionLocaleKey].(string); ok {
			prefs = append(prefs, v)
		}
	}
	if ck, err := c.Cookie(localeCookie); err == nil {
		prefs = append(prefs, ck.Value)
	}
	prefs = append(prefs, c.Request().Header.Get("Accept-Language"))
	return a.Locales.Match(prefs...)
}

// rememberLocale stores loc as the session preference when it changed. A
// response that sets the session cookie is marked private so shared caches
// never replay it.
func (a *App) rememberLocale(c echo.Context, loc locale.Locale) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	if v, _ := sess.Values[sessionLocaleKey].(string); v == loc.String() {
		return
	}
	sess.Values[sessionLocaleKey] = loc.String()
	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to save locale preference")
	}
}
