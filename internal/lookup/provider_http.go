package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"addressfinder/internal/postcode"
	"addressfinder/pkg/platform/sentinel"
)

// HTTPProvider talks to the address-data API over HTTP. Responses are plain
// JSON arrays of candidate records; a query that matches nothing returns an
// empty array with status 200, never 404.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider builds a provider against the given base URL. The timeout
// bounds each outbound call; no retry happens at this layer.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) ByPostcode(ctx context.Context, pc postcode.Postcode, filter string) ([]Candidate, error) {
	q := url.Values{"postcode": {pc.String()}}
	if filter != "" {
		q.Set("filter", filter)
	}
	return p.query(ctx, "/addresses", q)
}

func (p *HTTPProvider) ByOutcodeAndNumber(ctx context.Context, oc postcode.Outcode, number string) ([]Candidate, error) {
	q := url.Values{"outcode": {oc.String()}, "number": {number}}
	return p.query(ctx, "/addresses", q)
}

func (p *HTTPProvider) ByID(ctx context.Context, id string) (*Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/addresses/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, NewProviderError(ErrorInternal, "build request", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, p.transportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("candidate %q: %w", id, sentinel.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, NewProviderError(ErrorProviderOutage, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var candidate Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidate); err != nil {
		return nil, NewProviderError(ErrorBadData, "decode candidate", err)
	}
	return &candidate, nil
}

func (p *HTTPProvider) query(ctx context.Context, path string, q url.Values) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(ErrorInternal, "build request", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, p.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(ErrorProviderOutage, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, NewProviderError(ErrorBadData, "decode candidates", err)
	}
	return candidates, nil
}

func (p *HTTPProvider) transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return NewProviderError(ErrorTimeout, "provider call timed out", err)
	}
	return NewProviderError(ErrorProviderOutage, "provider unreachable", err)
}

// Health pings the provider's status endpoint.
func (p *HTTPProvider) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider ping returned %d", resp.StatusCode)
	}
	return nil
}
