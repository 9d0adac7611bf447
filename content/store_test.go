package content

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/landing/locale"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "posts.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Locale:    "en",
		Slug:      "test-post",
		Title:     "Test Post",
		Date:      "2024-01-15",
		Excerpt:   "A test post excerpt",
		Content:   "# Test Content",
		Published: true,
	}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("en", "test-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got != post {
		t.Errorf("GetPost = %+v, want %+v", got, post)
	}

	// Same slug in another locale is a different post.
	if _, err := s.GetPost("es", "test-post"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows for other locale, got %v", err)
	}
}

func TestSavePostUpdate(t *testing.T) {
	s := setupTestStore(t)

	post := Post{Locale: "en", Slug: "update-test", Title: "Original", Date: "2024-01-01", Published: true}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	post.Title = "Updated"
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost update failed: %v", err)
	}

	got, err := s.GetPost("en", "update-test")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated")
	}
}

func TestSavePostValidation(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name string
		post Post
		want string
	}{
		{"no locale", Post{Slug: "a", Title: "A", Date: "2024-01-01"}, "locale is required"},
		{"no slug", Post{Locale: "en", Title: "A", Date: "2024-01-01"}, "slug is required"},
		{"no title", Post{Locale: "en", Slug: "a", Date: "2024-01-01"}, "title is required"},
		{"bad date", Post{Locale: "en", Slug: "a", Title: "A", Date: "01/02/2024"}, "invalid date"},
		{"dot-dot slug", Post{Locale: "en", Slug: "..", Title: "A", Date: "2024-01-01"}, "post slug"},
		{"dot slug", Post{Locale: "en", Slug: ".", Title: "A", Date: "2024-01-01"}, "post slug"},
		{"slash in slug", Post{Locale: "en", Slug: "a/b", Title: "A", Date: "2024-01-01"}, "post slug"},
		{"backslash in slug", Post{Locale: "en", Slug: `a\b`, Title: "A", Date: "2024-01-01"}, "post slug"},
		{"hidden slug", Post{Locale: "en", Slug: ".env", Title: "A", Date: "2024-01-01"}, "post slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SavePost(tt.post)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("SavePost error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSavePostAcceptsUnicodeSlug(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{Locale: "es", Slug: "génesis_1.0", Title: "Génesis", Date: "2024-01-03"}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
}

func TestListPosts(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Locale: "en", Slug: "post-1", Title: "Post 1", Date: "2024-01-01", Published: true},
		{Locale: "en", Slug: "post-2", Title: "Post 2", Date: "2024-01-03", Published: true},
		{Locale: "en", Slug: "post-3", Title: "Post 3", Date: "2024-01-04", Published: false},
		{Locale: "es", Slug: "post-4", Title: "Post 4", Date: "2024-01-05", Published: true},
	}
	for _, p := range posts {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts("en")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPosts count = %d, want 2 (excluding unpublished and other locales)", len(got))
	}
	if got[0].Slug != "post-2" {
		t.Errorf("First post should be post-2 (latest), got %s", got[0].Slug)
	}
}

func TestLatest(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post, err := s.Latest(ctx, "en")
	if err != nil {
		t.Fatalf("Latest on empty store failed: %v", err)
	}
	if post != nil {
		t.Fatalf("Latest on empty store = %+v, want nil", post)
	}

	for _, p := range []Post{
		{Locale: "en", Slug: "old", Title: "Old", Date: "2023-06-01", Excerpt: "old one", Published: true},
		{Locale: "en", Slug: "new", Title: "New", Date: "2024-06-01", Excerpt: "new one", Published: true},
		{Locale: "en", Slug: "draft", Title: "Draft", Date: "2025-01-01", Published: false},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	post, err = s.Latest(ctx, "en")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	want := PostSummary{Slug: "new", Title: "New", Excerpt: "new one"}
	if post == nil || *post != want {
		t.Errorf("Latest = %+v, want %+v", post, want)
	}

	post, err = s.Latest(ctx, "es")
	if err != nil || post != nil {
		t.Errorf("Latest(es) = %+v, %v; want nil, nil", post, err)
	}
}

func TestLatestClosedStoreIsFetchError(t *testing.T) {
	s := setupTestStore(t)
	s.Close()

	_, err := s.Latest(context.Background(), "en")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{Locale: "en", Slug: "gone", Title: "Gone", Date: "2024-01-01", Published: true}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	if err := s.DeletePost("en", "gone"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPost("en", "gone"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDecodeAndImport(t *testing.T) {
	s := setupTestStore(t)
	set := locale.MustSet("en", "es")

	doc := `
posts:
  - locale: en
    slug: hello
    title: Hello
    date: "2024-01-15"
    excerpt: First post
    published: true
  - locale: es
    slug: hola
    title: Hola
    date: "2024-01-16"
    published: true
`
	posts, err := DecodePosts(strings.NewReader(doc), set)
	if err != nil {
		t.Fatalf("DecodePosts failed: %v", err)
	}
	n, err := s.Import(posts)
	if err != nil || n != 2 {
		t.Fatalf("Import = %d, %v; want 2, nil", n, err)
	}

	post, err := s.Latest(context.Background(), "en")
	if err != nil || post == nil || post.Excerpt != "First post" {
		t.Errorf("Latest(en) = %+v, %v", post, err)
	}
}

func TestDecodePostsRejectsUnsupportedLocale(t *testing.T) {
	doc := `
posts:
  - locale: fr
    slug: bonjour
    title: Bonjour
    date: "2024-01-15"
`
	_, err := DecodePosts(strings.NewReader(doc), locale.MustSet("en"))
	if !errors.Is(err, locale.ErrUnsupported) {
		t.Errorf("expected locale.ErrUnsupported, got %v", err)
	}
}

func TestTranslations(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []Post{
		{Locale: "es", Slug: "genesis", Title: "Génesis", Date: "2024-01-03", Published: true},
		{Locale: "en", Slug: "genesis", Title: "Genesis", Date: "2024-01-03", Published: true},
		{Locale: "de", Slug: "genesis", Title: "Genesis", Date: "2024-01-03", Published: false},
		{Locale: "en", Slug: "other", Title: "Other", Date: "2024-01-03", Published: true},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.Translations("genesis")
	if err != nil {
		t.Fatalf("Translations failed: %v", err)
	}
	if len(got) != 2 || got[0] != "en" || got[1] != "es" {
		t.Errorf("Translations = %v, want [en es]", got)
	}
}

func TestSavePostDerivesExcerpt(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SavePost(Post{Locale: "en", Slug: "genesis", Title: "Genesis", Date: "2024-01-03", Content: "## The block\n\nChancellor on *brink* of second bailout.", Published: true}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	got, err := s.GetPost("en", "genesis")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Excerpt != "Chancellor on brink of second bailout." {
		t.Errorf("Excerpt = %q", got.Excerpt)
	}
}
