package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetCanonicalizes(t *testing.T) {
	s, err := NewSet("en", "pt_br", "ES")
	require.NoError(t, err)

	assert.Equal(t, []Locale{"en", "pt-BR", "es"}, s.All())
	assert.Equal(t, Locale("en"), s.Default())
	assert.Equal(t, 3, s.Len())
}

func TestNewSetRejectsBadInput(t *testing.T) {
	tests := map[string][]string{
		"empty list":  nil,
		"blank tag":   {"en", " "},
		"invalid tag": {"en", "not a tag!"},
		"duplicate":   {"en", "EN"},
	}
	for name, tags := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewSet(tags...)
			assert.Error(t, err)
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := MustSet("en", "es")
	all := s.All()
	all[0] = "xx"
	assert.Equal(t, Locale("en"), s.All()[0])
}

func TestParse(t *testing.T) {
	s := MustSet("en", "es")

	l, err := s.Parse("es")
	require.NoError(t, err)
	assert.Equal(t, Locale("es"), l)

	_, err = s.Parse("de")
	assert.True(t, errors.Is(err, ErrUnsupported))

	// Non-canonical spellings do not get their own URL.
	_, err = s.Parse("ES")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestMatch(t *testing.T) {
	s := MustSet("en", "es", "de")

	tests := []struct {
		name  string
		prefs []string
		want  Locale
	}{
		{"no preference", nil, "en"},
		{"exact locale", []string{"de"}, "de"},
		{"accept language q values", []string{"fr;q=0.9, es;q=0.8"}, "es"},
		{"regional variant", []string{"es-MX"}, "es"},
		{"first usable preference wins", []string{"", "de", "es"}, "de"},
		{"unsupported falls back", []string{"zh-TW"}, "en"},
		{"garbage skipped", []string{";;;", "es"}, "es"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Match(tt.prefs...))
		})
	}
}

func TestDir(t *testing.T) {
	assert.Equal(t, "rtl", Locale("ar").Dir())
	assert.Equal(t, "rtl", Locale("fa").Dir())
	assert.Equal(t, "ltr", Locale("en").Dir())
	assert.Equal(t, "ltr", Locale("pt-BR").Dir())
}

func TestZeroSet(t *testing.T) {
	var s Set
	assert.Equal(t, Locale(""), s.Default())
	assert.False(t, s.Contains("en"))
	assert.Equal(t, Locale(""), s.Match("en"))
}
