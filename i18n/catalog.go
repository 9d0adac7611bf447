// Package i18n looks up translated UI strings from gettext catalogs.
//
// Message ids are the original English source strings. Catalogs live in
// po/<locale>.po; a locale without a catalog (typically the source
// language) renders message ids unchanged.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"

	"github.com/eringen/landing/locale"
)

// poDomain is the gettext domain loaded for every locale.
const poDomain = "landing"

//go:embed po/*.po
var embedded embed.FS

// Catalog holds one gettext locale per supported locale. It is read-only
// after Load and safe for concurrent use.
type Catalog struct {
	locales map[locale.Locale]*gotext.Locale
	source  locale.Locale
	strict  bool
	logger  zerolog.Logger

	// missing deduplicates warnings, keyed by locale+"\x00"+msgid.
	missing sync.Map
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStrict wraps missing translations in ⟦⟧ and logs each one once.
func WithStrict(strict bool) Option {
	return func(c *Catalog) { c.strict = strict }
}

// WithLogger sets the logger used for load and missing-key messages.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// WithSourceLocale names the language message ids are written in. Lookups in
// that locale never count as missing. Defaults to the set's default locale.
func WithSourceLocale(l locale.Locale) Option {
	return func(c *Catalog) { c.source = l }
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded(set locale.Set, opts ...Option) (*Catalog, error) {
	return Load(embedded, set, opts...)
}

// Load reads po/<locale>.po from fsys for every locale in set. File names
// may use underscores ("pt_BR.po"). Catalogs for locales outside the set
// are ignored.
func Load(fsys fs.FS, set locale.Set, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		locales: make(map[locale.Locale]*gotext.Locale, set.Len()),
		source:  set.Default(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	entries, err := fs.ReadDir(fsys, "po")
	if err != nil {
		return nil, fmt.Errorf("i18n: read po directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".po") {
			continue
		}
		loc, err := set.Parse(canonicalFileLocale(strings.TrimSuffix(name, ".po"), set))
		if err != nil {
			c.logger.Debug().Str("file", name).Msg("Skipping catalog for unsupported locale")
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join("po", name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		po := gotext.NewPo()
		po.Parse(raw)

		gl := gotext.NewLocale("", loc.String())
		gl.AddTranslator(poDomain, po)
		c.locales[loc] = gl

		c.logger.Info().
			Str("locale", loc.String()).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}
	return c, nil
}

// canonicalFileLocale maps a catalog file stem to the matching tag in set,
// accepting underscore and case variants.
func canonicalFileLocale(stem string, set locale.Set) string {
	want := strings.ToLower(strings.ReplaceAll(stem, "_", "-"))
	for _, l := range set.All() {
		if strings.ToLower(l.String()) == want {
			return l.String()
		}
	}
	return stem
}

// T returns the translation of msgid in loc, or msgid itself when the
// catalog has no entry. The empty msgid is the PO header and is never
// looked up.
func (c *Catalog) T(loc locale.Locale, msgid string) string {
	if msgid == "" {
		return ""
	}
	if gl, ok := c.locales[loc]; ok && gl.IsTranslatedD(poDomain, msgid) {
		return gl.GetD(poDomain, msgid)
	}
	if loc == c.source || !c.strict {
		return msgid
	}
	c.logMissingOnce(loc, msgid)
	return "⟦" + msgid + "⟧"
}

// Has reports whether loc has a catalog loaded.
func (c *Catalog) Has(loc locale.Locale) bool {
	_, ok := c.locales[loc]
	return ok
}

// For binds the catalog to one locale.
func (c *Catalog) For(loc locale.Locale) Translator {
	return Translator{catalog: c, locale: loc}
}

func (c *Catalog) logMissingOnce(loc locale.Locale, msgid string) {
	id := loc.String() + "\x00" + msgid
	if _, loaded := c.missing.LoadOrStore(id, struct{}{}); !loaded {
		c.logger.Warn().
			Str("locale", loc.String()).
			Str("key", msgid).
			Msg("Missing i18n translation")
	}
}

// Translator is a Catalog bound to a locale; it is the t(key) collaborator
// of the page views.
type Translator struct {
	catalog *Catalog
	locale  locale.Locale
}

// Locale returns the bound locale.
func (t Translator) Locale() locale.Locale { return t.locale }

// T translates msgid. A zero Translator returns msgid unchanged.
func (t Translator) T(msgid string) string {
	if t.catalog == nil {
		return msgid
	}
	return t.catalog.T(t.locale, msgid)
}

// Rich translates msgid and substitutes its inline tags with the given
// elements. See Rich.
func (t Translator) Rich(msgid string, elements map[string]Element) string {
	return Rich(t.T(msgid), elements)
}
