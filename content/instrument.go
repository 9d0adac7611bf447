package content

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/eringen/landing/locale"
)

// Fetch outcomes recorded by Instrumented.
const (
	ResultPresent = "present"
	ResultAbsent  = "absent"
	ResultError   = "error"
)

// Instrumented wraps a Fetcher, counting outcomes per locale and logging
// failures. Errors pass through unchanged.
type Instrumented struct {
	next    Fetcher
	fetches *prometheus.CounterVec
	logger  zerolog.Logger
}

// NewInstrumented registers the landing_content_fetch_total counter with reg.
func NewInstrumented(next Fetcher, reg prometheus.Registerer, logger zerolog.Logger) (*Instrumented, error) {
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "landing",
		Subsystem: "content",
		Name:      "fetch_total",
		Help:      "Latest-post fetches by locale and result.",
	}, []string{"locale", "result"})
	if err := reg.Register(fetches); err != nil {
		return nil, err
	}
	return &Instrumented{next: next, fetches: fetches, logger: logger}, nil
}

// Latest implements Fetcher.
func (f *Instrumented) Latest(ctx context.Context, loc locale.Locale) (*PostSummary, error) {
	post, err := f.next.Latest(ctx, loc)
	switch {
	case err != nil:
		f.fetches.WithLabelValues(loc.String(), ResultError).Inc()
		f.logger.Error().Err(err).Str("locale", loc.String()).Msg("Latest post fetch failed")
	case post == nil:
		f.fetches.WithLabelValues(loc.String(), ResultAbsent).Inc()
		f.logger.Debug().Str("locale", loc.String()).Msg("No latest post")
	default:
		f.fetches.WithLabelValues(loc.String(), ResultPresent).Inc()
	}
	return post, err
}
