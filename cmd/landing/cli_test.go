package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "landing dev\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestPostsImportAndLatest(t *testing.T) {
	tmp := t.TempDir()
	db := filepath.Join(tmp, "posts.db")
	t.Setenv("LANDING_DATABASE_PATH", db)
	t.Setenv("LANDING_LOCALES", "en,es")

	file := filepath.Join(tmp, "posts.yaml")
	doc := `posts:
  - locale: es
    slug: hola
    title: Hola
    date: "2024-02-01"
    excerpt: Primer post
    published: true
`
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "posts", "import", file, "--log-format", "json", "--log-level", "error")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "imported 1 posts") {
		t.Errorf("import output = %q", out)
	}

	out, err = runCLI(t, "posts", "latest", "es", "--log-level", "error")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if !strings.HasPrefix(out, "hola\tHola\n") || !strings.Contains(out, "Primer post") {
		t.Errorf("latest output = %q", out)
	}

	out, err = runCLI(t, "posts", "latest", "en", "--log-level", "error")
	if err != nil {
		t.Fatalf("latest en failed: %v", err)
	}
	if !strings.Contains(out, "no published posts for en") {
		t.Errorf("latest en output = %q", out)
	}
}

func TestPostsLatestRejectsUnsupportedLocale(t *testing.T) {
	t.Setenv("LANDING_DATABASE_PATH", filepath.Join(t.TempDir(), "posts.db"))
	t.Setenv("LANDING_LOCALES", "en")

	if _, err := runCLI(t, "posts", "latest", "fr"); err == nil {
		t.Fatal("expected error for unsupported locale")
	}
}

func TestBuild(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LANDING_DATABASE_PATH", filepath.Join(tmp, "posts.db"))
	t.Setenv("LANDING_LOCALES", "en,es")
	out := filepath.Join(tmp, "dist")

	if _, err := runCLI(t, "build", "--out", out, "--url", "https://example.org", "--log-level", "error"); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, p := range []string{"en/index.html", "es/index.html", "sitemap.xml", "robots.txt", "public/site.css"} {
		if _, err := os.Stat(filepath.Join(out, p)); err != nil {
			t.Errorf("expected %s in export: %v", p, err)
		}
	}
}
