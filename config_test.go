package landing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, []string{"en"}, cfg.Locales)
	assert.Equal(t, 10*time.Second, cfg.ContentTimeout)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SiteConfig)
	}{
		{"relative url", func(c *SiteConfig) { c.URL = "/site" }},
		{"content api scheme", func(c *SiteConfig) { c.ContentAPI = "ftp://example.org" }},
		{"negative timeout", func(c *SiteConfig) { c.ContentTimeout = -time.Second }},
		{"negative rate", func(c *SiteConfig) { c.ImageRate = -1 }},
		{"log format", func(c *SiteConfig) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg SiteConfig
			cfg.setDefaults()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LANDING_URL":               "https://satoshi.nakamotoinstitute.org",
		"LANDING_LOCALES":           "en, es ,de",
		"LANDING_CONTENT_TIMEOUT":   "3s",
		"LANDING_RESPONSIVE_IMAGES": "true",
		"LANDING_NAME":              "",
		"LANDING_AUTHOR":            "Satoshi Nakamoto Institute",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := SiteConfig{Name: "Kept"}
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "https://satoshi.nakamotoinstitute.org", cfg.URL)
	assert.Equal(t, []string{"en", "es", "de"}, cfg.Locales)
	assert.Equal(t, 3*time.Second, cfg.ContentTimeout)
	assert.True(t, cfg.ResponsiveImages)
	assert.Equal(t, "Kept", cfg.Name)
	assert.Equal(t, "Satoshi Nakamoto Institute", cfg.Author)

	env["LANDING_COOKIE_SECURE"] = "maybe"
	assert.Error(t, cfg.applyEnv(lookup))
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: https://example.org
locales: [en, es]
content_api: https://api.example.org
image_burst: 3
`), 0o644))
	t.Setenv("LANDING_LOCALES", "en,es,de")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", cfg.URL)
	assert.Equal(t, []string{"en", "es", "de"}, cfg.Locales)
	assert.Equal(t, "https://api.example.org", cfg.ContentAPI)
	assert.Equal(t, 3, cfg.ImageBurst)
	assert.Equal(t, float64(2), cfg.ImageRate)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
