// Package content fetches the latest Mempool post summary for a locale,
// either from a remote content API or from a local SQLite store.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eringen/landing/locale"
)

// PostSummary is the teaser data for one post.
type PostSummary struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// Fetcher returns the newest published post for a locale. A nil summary
// with a nil error means the locale has no posts; that is not a failure.
type Fetcher interface {
	Latest(ctx context.Context, loc locale.Locale) (*PostSummary, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, loc locale.Locale) (*PostSummary, error)

// Latest calls f.
func (f FetcherFunc) Latest(ctx context.Context, loc locale.Locale) (*PostSummary, error) {
	return f(ctx, loc)
}

var (
	// ErrFetch matches every *FetchError via errors.Is.
	ErrFetch = errors.New("content fetch failed")

	// ErrMalformedResponse is wrapped by a FetchError when the API answers
	// with something that is not a post summary.
	ErrMalformedResponse = errors.New("malformed response")
)

// FetchError reports that the external call could not complete. It is
// distinct from an absent post.
type FetchError struct {
	Locale locale.Locale
	// StatusCode is the HTTP status of the response, or 0 when no response
	// was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("content: fetch latest post")
	if e.Locale != "" {
		b.WriteString(" for ")
		b.WriteString(e.Locale.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf(" (status code: %d)", e.StatusCode))
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) hold for every FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }
