package content

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/landing/locale"
)

func TestInstrumentedCountsOutcomes(t *testing.T) {
	boom := &FetchError{Locale: "de", Err: errors.New("boom")}
	next := FetcherFunc(func(_ context.Context, loc locale.Locale) (*PostSummary, error) {
		switch loc {
		case "en":
			return &PostSummary{Slug: "x", Title: "X"}, nil
		case "es":
			return nil, nil
		default:
			return nil, boom
		}
	})

	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	f, err := NewInstrumented(next, reg, zerolog.New(&logs))
	require.NoError(t, err)

	ctx := context.Background()
	post, err := f.Latest(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "x", post.Slug)

	post, err = f.Latest(ctx, "es")
	require.NoError(t, err)
	assert.Nil(t, post)

	_, err = f.Latest(ctx, "de")
	assert.Same(t, boom, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.fetches.WithLabelValues("en", ResultPresent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.fetches.WithLabelValues("es", ResultAbsent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.fetches.WithLabelValues("de", ResultError)))
	assert.Contains(t, logs.String(), "Latest post fetch failed")
}

func TestNewInstrumentedDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	next := FetcherFunc(func(context.Context, locale.Locale) (*PostSummary, error) { return nil, nil })

	_, err := NewInstrumented(next, reg, zerolog.Nop())
	require.NoError(t, err)
	_, err = NewInstrumented(next, reg, zerolog.Nop())
	assert.Error(t, err)
}
