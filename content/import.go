package content

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/eringen/landing/locale"
)

// postFile is the on-disk format accepted by Import:
//
//	posts:
//	  - locale: en
//	    slug: hello
//	    title: Hello
//	    date: "2024-01-15"
//	    excerpt: ...
//	    published: true
type postFile struct {
	Posts []Post `yaml:"posts"`
}

// DecodePosts reads a YAML post file. Posts in locales outside set are
// rejected so a typo cannot create an unreachable post.
func DecodePosts(r io.Reader, set locale.Set) ([]Post, error) {
	var f postFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("content: decode posts: %w", err)
	}
	for i, p := range f.Posts {
		if !set.Contains(p.Locale) {
			return nil, fmt.Errorf("content: post %d (%q): %w: %q", i, p.Slug, locale.ErrUnsupported, p.Locale)
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("content: post %d: %w", i, err)
		}
	}
	return f.Posts, nil
}

// Import saves every post in posts, stopping at the first failure.
func (s *Store) Import(posts []Post) (int, error) {
	for i, p := range posts {
		if err := s.SavePost(p); err != nil {
			return i, err
		}
	}
	return len(posts), nil
}
