// Package urls builds locale-prefixed links from logical route names and
// maps request paths back to routes.
package urls

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/eringen/landing/locale"
)

// Config is the immutable input of a Builder.
type Config struct {
	BaseURL     string // canonical site origin, e.g. "https://example.org"
	CDNURL      string // static asset base; empty serves assets from /public
	SubstackURL string // newsletter signup page
	Locales     locale.Set
}

// Builder maps (locale, route, params) to paths. It holds no mutable state
// and is safe for concurrent use.
type Builder struct {
	base     *url.URL
	cdn      string
	external map[Route]string
	locales  locale.Set
}

// New validates cfg and returns a Builder.
func New(cfg Config) (*Builder, error) {
	if cfg.Locales.Len() == 0 {
		return nil, errors.New("urls: no locales configured")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("urls: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("urls: base url %q must be absolute", cfg.BaseURL)
	}
	if cfg.SubstackURL == "" {
		return nil, errors.New("urls: substack url is required")
	}
	cdn := strings.TrimSuffix(cfg.CDNURL, "/")
	if cdn == "" {
		cdn = "/public"
	}
	return &Builder{
		base:     base,
		cdn:      cdn,
		external: map[Route]string{Substack: cfg.SubstackURL},
		locales:  cfg.Locales,
	}, nil
}

// Locales returns the set the builder is total over.
func (b *Builder) Locales() locale.Set { return b.locales }

// Build returns the site-relative path for route in loc, or the configured
// absolute URL for external routes. params must supply exactly the
// placeholders the route declares.
func (b *Builder) Build(loc locale.Locale, name Route, params Params) (string, error) {
	r, ok := byName[name]
	if !ok {
		return "", &Error{Op: "build", Route: name, Locale: loc, Err: ErrUnknownRoute}
	}
	if !b.locales.Contains(loc) {
		return "", &Error{Op: "build", Route: name, Locale: loc, Err: ErrUnsupportedLocale}
	}
	want := r.params()
	for _, p := range want {
		if params[p] == "" {
			return "", &Error{Op: "build", Route: name, Locale: loc, Param: p, Err: ErrMissingParameter}
		}
	}
	if len(params) > len(want) {
		for k := range params {
			if !slices.Contains(want, k) {
				return "", &Error{Op: "build", Route: name, Locale: loc, Param: k, Err: ErrUnexpectedParameter}
			}
		}
	}
	if r.external {
		return b.external[name], nil
	}

	segs := r.segments()
	out := make([]string, len(segs))
	for i, seg := range segs {
		switch {
		case seg == localeSegment:
			out[i] = loc.String()
		case isPlaceholder(seg):
			out[i] = url.PathEscape(params[seg[1:len(seg)-1]])
		default:
			out[i] = seg
		}
	}
	p := "/" + strings.Join(out, "/")
	if r.trailingSlash() {
		p += "/"
	}
	return p, nil
}

// Absolute is Build joined onto the base URL. External routes are returned
// unchanged.
func (b *Builder) Absolute(loc locale.Locale, name Route, params Params) (string, error) {
	p, err := b.Build(loc, name, params)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(p, "/") {
		return p, nil
	}
	return b.base.String() + p, nil
}

// MustBuild is Build for links in the static link table. A failure means the
// table itself is broken, so it panics.
func (b *Builder) MustBuild(loc locale.Locale, name Route, params Params) string {
	p, err := b.Build(loc, name, params)
	if err != nil {
		panic(err)
	}
	return p
}

// Site joins path segments onto the base URL, ensuring a trailing slash
// unless the last segment looks like a file.
func (b *Builder) Site(segments ...string) string {
	u := *b.base
	u.Path = path.Join(append([]string{"/", u.Path}, segments...)...)
	if len(segments) > 0 && path.Ext(u.Path) == "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// CDN resolves a static asset path against the CDN base.
func (b *Builder) CDN(assetPath string) string {
	return b.cdn + "/" + strings.TrimPrefix(assetPath, "/")
}

// Match is the result of a reverse lookup.
type Match struct {
	Locale locale.Locale
	Route  Route
	Params Params
}

// Match maps a site-relative path back to its route, locale and params.
// It is the inverse of Build for internal routes.
func (b *Builder) Match(p string) (Match, error) {
	if p == "" || p[0] != '/' {
		return Match{}, &Error{Op: "match", Path: p, Err: ErrNoMatch}
	}
	trailing := strings.HasSuffix(p, "/")
	got := strings.Split(strings.Trim(p, "/"), "/")
	for _, r := range table {
		if r.external || r.trailingSlash() != trailing {
			continue
		}
		segs := r.segments()
		if len(segs) != len(got) {
			continue
		}
		m, ok := b.matchSegments(r, segs, got)
		if ok {
			return m, nil
		}
	}
	return Match{}, &Error{Op: "match", Path: p, Err: ErrNoMatch}
}

func (b *Builder) matchSegments(r route, pattern, got []string) (Match, bool) {
	m := Match{Route: r.name}
	for i, seg := range pattern {
		switch {
		case seg == localeSegment:
			loc, err := b.locales.Parse(got[i])
			if err != nil {
				return Match{}, false
			}
			m.Locale = loc
		case isPlaceholder(seg):
			v, err := url.PathUnescape(got[i])
			if err != nil || v == "" {
				return Match{}, false
			}
			if m.Params == nil {
				m.Params = Params{}
			}
			m.Params[seg[1:len(seg)-1]] = v
		case seg != got[i]:
			return Match{}, false
		}
	}
	return m, true
}
