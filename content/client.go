package content

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"

	"github.com/eringen/landing/locale"
)

// maxResponseSize bounds the body read from the content API.
const maxResponseSize = 1 << 20

// Client reads post summaries from a content API exposing
// GET {base}/posts/latest/{locale}.
type Client struct {
	base   *url.URL
	http   *http.Client
	policy *bluemonday.Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a Client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("content: parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content: api url %q must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		policy: bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Latest implements Fetcher. A 404 or a JSON null body is an absent post;
// every other failure is a *FetchError.
func (c *Client) Latest(ctx context.Context, loc locale.Locale) (*PostSummary, error) {
	endpoint := c.base.JoinPath("posts", "latest", loc.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &FetchError{Locale: loc, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Locale: loc, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &FetchError{Locale: loc, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Locale:     loc,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}
	return c.parse(loc, resp.StatusCode, body)
}

func (c *Client) parse(loc locale.Locale, status int, body []byte) (*PostSummary, error) {
	if !gjson.ValidBytes(body) {
		return nil, &FetchError{Locale: loc, StatusCode: status, Err: fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)}
	}
	result := gjson.ParseBytes(body)
	if result.Type == gjson.Null {
		return nil, nil
	}
	if !result.IsObject() {
		return nil, &FetchError{Locale: loc, StatusCode: status, Err: fmt.Errorf("%w: expected object", ErrMalformedResponse)}
	}

	slug := result.Get("slug")
	if slug.Type != gjson.String || strings.TrimSpace(slug.String()) == "" {
		return nil, &FetchError{Locale: loc, StatusCode: status, Err: fmt.Errorf("%w: missing slug", ErrMalformedResponse)}
	}
	title := result.Get("title")
	if title.Type != gjson.String {
		return nil, &FetchError{Locale: loc, StatusCode: status, Err: fmt.Errorf("%w: missing title", ErrMalformedResponse)}
	}

	return &PostSummary{
		Slug:    slug.String(),
		Title:   c.sanitize(title.String()),
		Excerpt: c.sanitize(result.Get("excerpt").String()),
	}, nil
}

// sanitize reduces API-supplied text to plain text; views escape it again
// on output.
func (c *Client) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}
