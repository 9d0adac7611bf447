package landing

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/eringen/landing/content"
)

// SiteConfig holds all configuration for a landing site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name and its translation msgid
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for meta tags; also the translation msgid
	Author      string `yaml:"author"`      // Publisher name for JSON-LD

	Locales     []string `yaml:"locales"`      // Supported locales, default first (default ["en"])
	CDNURL      string   `yaml:"cdn_url"`      // Static asset base (default "/public")
	SubstackURL string   `yaml:"substack_url"` // Newsletter signup page

	ContentAPI     string        `yaml:"content_api"`     // Content API base URL; empty serves posts from DatabasePath
	ContentTimeout time.Duration `yaml:"content_timeout"` // Per-request content API timeout (default 10s)
	DatabasePath   string        `yaml:"database_path"`   // SQLite path (default "data/posts.db")

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	StaticDir    string `yaml:"static_dir"`    // Directory served under /public (default "public")
	CookieSecure bool   `yaml:"cookie_secure"` // Set true for HTTPS
	// SessionSecret signs the locale preference cookie. Empty generates a
	// per-process secret, so preferences do not survive restarts.
	SessionSecret string `yaml:"session_secret"`

	StrictTranslations bool    `yaml:"strict_translations"` // Mark and log missing translations
	ResponsiveImages   bool    `yaml:"responsive_images"`   // Emit srcset pointing at /img/ variants
	ImageRate          float64 `yaml:"image_rate"`          // Resize requests per second per IP (default 2)
	ImageBurst         int     `yaml:"image_burst"`         // Resize burst per IP (default 10)

	LogLevel  string `yaml:"log_level"`  // zerolog level (default "info")
	LogFormat string `yaml:"log_format"` // "console" or "json" (default "console")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Satoshi Nakamoto Institute"
	}
	if c.Description == "" {
		c.Description = "The Satoshi Nakamoto Institute preserves and curates the history of Bitcoin and the cypherpunk movement."
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if len(c.Locales) == 0 {
		c.Locales = []string{"en"}
	}
	if c.SubstackURL == "" {
		c.SubstackURL = "https://satoshinakamotoinstitute.substack.com/"
	}
	if c.ContentTimeout == 0 {
		c.ContentTimeout = 10 * time.Second
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/posts.db"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ImageRate == 0 {
		c.ImageRate = 2
	}
	if c.ImageBurst == 0 {
		c.ImageBurst = 10
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

// Validate reports configuration that cannot produce a working site.
func (c SiteConfig) Validate() error {
	var errs []error
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q must be an absolute URL", c.URL))
	}
	if c.ContentAPI != "" {
		if u, err := url.Parse(c.ContentAPI); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("content_api %q must be an http(s) URL", c.ContentAPI))
		}
	}
	if c.ContentTimeout < 0 {
		errs = append(errs, errors.New("content_timeout must not be negative"))
	}
	if c.ImageRate < 0 || c.ImageBurst < 0 {
		errs = append(errs, errors.New("image_rate and image_burst must not be negative"))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q must be console or json", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("landing: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfig reads .env (when present), then the YAML file at path (when
// non-empty), then LANDING_* environment overrides, and fills defaults.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return cfg, fmt.Errorf("landing: load .env: %w", err)
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("landing: read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("landing: parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"LANDING_NAME":           &c.Name,
		"LANDING_URL":            &c.URL,
		"LANDING_DESCRIPTION":    &c.Description,
		"LANDING_AUTHOR":         &c.Author,
		"LANDING_CDN_URL":        &c.CDNURL,
		"LANDING_SUBSTACK_URL":   &c.SubstackURL,
		"LANDING_CONTENT_API":    &c.ContentAPI,
		"LANDING_DATABASE_PATH":  &c.DatabasePath,
		"LANDING_ADDR":           &c.Addr,
		"LANDING_STATIC_DIR":     &c.StaticDir,
		"LANDING_SESSION_SECRET": &c.SessionSecret,
		"LANDING_LOG_LEVEL":      &c.LogLevel,
		"LANDING_LOG_FORMAT":     &c.LogFormat,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("LANDING_LOCALES"); ok && v != "" {
		c.Locales = nil
		for _, l := range strings.Split(v, ",") {
			if l = strings.TrimSpace(l); l != "" {
				c.Locales = append(c.Locales, l)
			}
		}
	}
	if v, ok := lookup("LANDING_CONTENT_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("landing: LANDING_CONTENT_TIMEOUT: %w", err)
		}
		c.ContentTimeout = d
	}
	for key, dst := range map[string]*bool{
		"LANDING_COOKIE_SECURE":       &c.CookieSecure,
		"LANDING_STRICT_TRANSLATIONS": &c.StrictTranslations,
		"LANDING_RESPONSIVE_IMAGES":   &c.ResponsiveImages,
	} {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("landing: %s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the application logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithFetcher replaces the latest-post source chosen from the config.
func WithFetcher(f content.Fetcher) Option {
	return func(a *App) {
		a.fetcher = f
	}
}

// WithStore uses an already opened post store instead of DatabasePath.
func WithStore(s *content.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithRegistry sets where metrics are registered and gathered from
// (default: a fresh registry).
func WithRegistry(r *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = r
	}
}
