package lookup

import (
	"context"
	"errors"
	"fmt"

	"addressfinder/internal/postcode"
)

// Provider queries the upstream address-data service. Implementations must
// return an empty slice, not an error, when a query matches nothing: "no
// results" is a meaningful outcome distinct from a provider failure.
type Provider interface {
	// ByPostcode returns every candidate record for a full postcode,
	// optionally narrowed by free-text filter.
	ByPostcode(ctx context.Context, pc postcode.Postcode, filter string) ([]Candidate, error)

	// ByOutcodeAndNumber returns candidates for an outward code plus a
	// building number. Used for BFPO and similar military addresses that
	// have no usable inward code.
	ByOutcodeAndNumber(ctx context.Context, oc postcode.Outcode, number string) ([]Candidate, error)

	// ByID fetches one candidate by provider identifier.
	ByID(ctx context.Context, id string) (*Candidate, error)
}

// ErrorCategory normalizes provider failures so callers can decide whether a
// failure is worth retrying at the request level.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorNotFound       ErrorCategory = "not_found"
	ErrorInternal       ErrorCategory = "internal"
)

// ProviderError wraps provider failures with normalized categorization.
type ProviderError struct {
	Category   ErrorCategory
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("address provider [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("address provider [%s]: %s", e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a normalized provider error. Timeouts and outages
// are marked retryable; bad data and internal faults are not.
func NewProviderError(category ErrorCategory, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorProviderOutage,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
