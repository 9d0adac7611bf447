package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/landing/locale"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// slugPattern keeps a slug to a single path segment that is not "." or "..".
var slugPattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}._-]*$`)

// Post is a stored Mempool post in one locale.
type Post struct {
	Locale    locale.Locale `yaml:"locale"`
	Slug      string        `yaml:"slug"`
	Title     string        `yaml:"title"`
	Date      string        `yaml:"date"` // YYYY-MM-DD
	Excerpt   string        `yaml:"excerpt"`
	Content   string        `yaml:"content"`
	Published bool          `yaml:"published"`
}

// Summary returns the teaser fields of p.
func (p Post) Summary() PostSummary {
	return PostSummary{Slug: p.Slug, Title: p.Title, Excerpt: p.Excerpt}
}

// Store wraps a SQLite database of posts. It implements Fetcher so a site
// can serve its own Mempool without a separate content API.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while an import writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    locale TEXT NOT NULL,
    slug TEXT NOT NULL,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (locale, slug)
);
CREATE INDEX IF NOT EXISTS posts_locale_date ON posts (locale, published, date DESC);
`)
	return err
}

// Latest implements Fetcher. Database failures are reported as *FetchError.
func (s *Store) Latest(ctx context.Context, loc locale.Locale) (*PostSummary, error) {
	var p PostSummary
	err := s.db.QueryRowContext(ctx,
		`SELECT slug, title, excerpt FROM posts WHERE locale = ? AND published = 1 ORDER BY date DESC, slug ASC LIMIT 1`,
		loc.String()).Scan(&p.Slug, &p.Title, &p.Excerpt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &FetchError{Locale: loc, Err: err}
	}
	return &p, nil
}

// ListPosts returns published posts for loc ordered by date descending.
func (s *Store) ListPosts(loc locale.Locale) ([]Post, error) {
	rows, err := s.db.Query(`SELECT slug, title, date, excerpt, content, published FROM posts WHERE locale = ? AND published = 1 ORDER BY date DESC, slug ASC`, loc.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p := Post{Locale: loc}
		var published int
		if err := rows.Scan(&p.Slug, &p.Title, &p.Date, &p.Excerpt, &p.Content, &published); err != nil {
			return nil, err
		}
		p.Published = published == 1
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by locale and slug regardless of published
// status.
func (s *Store) GetPost(loc locale.Locale, slug string) (Post, error) {
	p := Post{Locale: loc, Slug: slug}
	var published int
	err := s.db.QueryRow(`SELECT title, date, excerpt, content, published FROM posts WHERE locale = ? AND slug = ?`, loc.String(), slug).
		Scan(&p.Title, &p.Date, &p.Excerpt, &p.Content, &published)
	if err != nil {
		return Post{}, err
	}
	p.Published = published == 1
	return p, nil
}

// Translations returns the locales in which slug is published, in
// lexical order.
func (s *Store) Translations(slug string) ([]locale.Locale, error) {
	rows, err := s.db.Query(`SELECT locale FROM posts WHERE slug = ? AND published = 1 ORDER BY locale`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []locale.Locale
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		out = append(out, locale.Locale(l))
	}
	return out, rows.Err()
}

// SavePost validates and upserts a post. A missing excerpt is derived
// from the first paragraph of the content.
func (s *Store) SavePost(p Post) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.Excerpt == "" && p.Content != "" {
		ex, err := Excerpt(p.Content, excerptLen)
		if err != nil {
			return fmt.Errorf("content: post %q: excerpt: %w", p.Slug, err)
		}
		p.Excerpt = ex
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (locale, slug, title, date, excerpt, content, published) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Locale.String(), p.Slug, p.Title, p.Date, p.Excerpt, p.Content, published)
	return err
}

// DeletePost removes a post.
func (s *Store) DeletePost(loc locale.Locale, slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE locale = ? AND slug = ?`, loc.String(), slug)
	return err
}

func (p Post) validate() error {
	switch {
	case p.Locale == "":
		return errors.New("content: post locale is required")
	case strings.TrimSpace(p.Slug) == "":
		return errors.New("content: post slug is required")
	case !slugPattern.MatchString(p.Slug):
		return fmt.Errorf("content: post slug %q: use letters, digits, '.', '-' or '_', starting with a letter or digit", p.Slug)
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("content: post %q: title is required", p.Slug)
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return fmt.Errorf("content: post %q: invalid date %q, use YYYY-MM-DD", p.Slug, p.Date)
	}
	return nil
}
