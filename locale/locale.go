// Package locale defines the fixed set of supported locales and resolves
// requested tags against it.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnsupported is returned when a tag is well formed but not in the set.
var ErrUnsupported = errors.New("locale: unsupported locale")

// Locale is a canonical BCP 47 tag from a Set, e.g. "en" or "pt-BR".
type Locale string

// String returns the tag text.
func (l Locale) String() string { return string(l) }

// Tag returns the parsed language tag.
func (l Locale) Tag() language.Tag { return language.Make(string(l)) }

// Dir returns the text direction for the locale's script: "rtl" or "ltr".
func (l Locale) Dir() string {
	base, _ := l.Tag().Base()
	switch base.String() {
	case "ar", "fa", "he", "ur":
		return "rtl"
	}
	return "ltr"
}

// Set is an immutable, ordered set of supported locales. The first entry is
// the default. The zero value is empty and matches nothing.
type Set struct {
	locales []Locale
	index   map[Locale]struct{}
	matcher language.Matcher
}

// NewSet builds a Set from raw tags. Tags are canonicalized, so "pt_br" and
// "pt-BR" name the same locale. Duplicates are an error.
func NewSet(tags ...string) (Set, error) {
	if len(tags) == 0 {
		return Set{}, errors.New("locale: at least one locale is required")
	}
	s := Set{
		locales: make([]Locale, 0, len(tags)),
		index:   make(map[Locale]struct{}, len(tags)),
	}
	parsed := make([]language.Tag, 0, len(tags))
	for _, raw := range tags {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Set{}, errors.New("locale: empty locale tag")
		}
		t, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
		if err != nil {
			return Set{}, fmt.Errorf("locale: parse %q: %w", raw, err)
		}
		l := Locale(t.String())
		if _, dup := s.index[l]; dup {
			return Set{}, fmt.Errorf("locale: duplicate locale %q", l)
		}
		s.index[l] = struct{}{}
		s.locales = append(s.locales, l)
		parsed = append(parsed, t)
	}
	s.matcher = language.NewMatcher(parsed)
	return s, nil
}

// MustSet is NewSet that panics on error, for package-level defaults and tests.
func MustSet(tags ...string) Set {
	s, err := NewSet(tags...)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns a copy of the locales in configured order.
func (s Set) All() []Locale {
	out := make([]Locale, len(s.locales))
	copy(out, s.locales)
	return out
}

// Len reports the number of supported locales.
func (s Set) Len() int { return len(s.locales) }

// Default returns the first configured locale, or "" for an empty set.
func (s Set) Default() Locale {
	if len(s.locales) == 0 {
		return ""
	}
	return s.locales[0]
}

// Contains reports whether l is supported.
func (s Set) Contains(l Locale) bool {
	_, ok := s.index[l]
	return ok
}

// Parse validates a requested tag (typically a path parameter) against the
// set. Only exact canonical matches are accepted so that every locale has a
// single URL.
func (s Set) Parse(raw string) (Locale, error) {
	l := Locale(raw)
	if s.Contains(l) {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
}

// Match negotiates the best supported locale for a list of preferences in
// priority order. Each entry may itself be an Accept-Language header value.
// Empty entries are skipped; with no usable preference Match returns Default.
func (s Set) Match(preferences ...string) Locale {
	if s.matcher == nil {
		return s.Default()
	}
	for _, pref := range preferences {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		// A preference that names a supported locale directly always wins.
		if l := Locale(pref); s.Contains(l) {
			return l
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := s.matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		return s.locales[idx]
	}
	return s.Default()
}
