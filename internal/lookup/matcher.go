package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"addressfinder/internal/platform/metrics"
	"addressfinder/internal/postcode"
	"addressfinder/pkg/platform/sentinel"
)

// Matcher finds candidate addresses for a cleaned postcode. It owns the
// country-code cleanup the provider gets wrong and the UK-only filtering that
// ukMode journeys require; ordering is delegated to Rank.
type Matcher struct {
	provider Provider
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewMatcher constructs a Matcher.
func NewMatcher(provider Provider, logger *slog.Logger, m *metrics.Metrics) *Matcher {
	return &Matcher{provider: provider, logger: logger, metrics: m}
}

// Find queries the provider by postcode and returns ranked candidates.
// An empty result is not an error; provider failures surface as
// sentinel.ErrUnavailable so the caller renders a service-error state.
func (m *Matcher) Find(ctx context.Context, pc postcode.Postcode, filter string, ukMode bool) ([]Candidate, error) {
	return m.find(ctx, ukMode, func(ctx context.Context) ([]Candidate, error) {
		return m.provider.ByPostcode(ctx, pc, filter)
	})
}

// FindByOutcode queries the provider by outward code plus building number,
// the BFPO variant of Find.
func (m *Matcher) FindByOutcode(ctx context.Context, oc postcode.Outcode, number string, ukMode bool) ([]Candidate, error) {
	return m.find(ctx, ukMode, func(ctx context.Context) ([]Candidate, error) {
		return m.provider.ByOutcodeAndNumber(ctx, oc, number)
	})
}

func (m *Matcher) find(ctx context.Context, ukMode bool, query func(context.Context) ([]Candidate, error)) ([]Candidate, error) {
	start := time.Now()
	raw, err := query(ctx)
	m.metrics.ObserveLookup(time.Since(start))
	if err != nil {
		m.metrics.ProviderFailure()
		m.logger.ErrorContext(ctx, "address lookup failed", "error", err, "retryable", IsRetryable(err))
		return nil, fmt.Errorf("address lookup: %w", errors.Join(sentinel.ErrUnavailable, err))
	}

	candidates := make([]Candidate, 0, len(raw))
	for _, c := range raw {
		c.Country = canonicalCountry(c.Country)
		if ukMode && c.Country.Code != "GB" {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		m.metrics.LookupEmpty()
	}
	return Rank(candidates), nil
}

// canonicalCountry fixes the provider's inconsistent "UK" alias for
// Great Britain.
func canonicalCountry(c Country) Country {
	if c.Code == "UK" {
		c.Code = "GB"
		if c.Name == "" || c.Name == "UK" {
			c.Name = "United Kingdom"
		}
	}
	return c
}
