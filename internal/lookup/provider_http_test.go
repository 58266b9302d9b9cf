package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addressfinder/pkg/platform/sentinel"
)

func TestHTTPProviderByPostcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addresses", r.URL.Path)
		assert.Equal(t, "ZZ1 1ZZ", r.URL.Query().Get("postcode"))
		assert.Equal(t, "flat", r.URL.Query().Get("filter"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"GB1","lines":["1 High Street"],"town":"Testford","postcode":"ZZ1 1ZZ","country":{"code":"UK","name":"UK"}}]`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	got, err := p.ByPostcode(context.Background(), "ZZ1 1ZZ", "flat")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GB1", got[0].ID)
	assert.Equal(t, "Testford", got[0].Town)
}

func TestHTTPProviderEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	got, err := p.ByPostcode(context.Background(), "ZZ1 1ZZ", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHTTPProviderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	_, err := p.ByPostcode(context.Background(), "ZZ1 1ZZ", "")
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestHTTPProviderByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	_, err := p.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestHTTPProviderByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addresses/GB1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"GB1","lines":["1 High Street"],"town":"Testford","postcode":"ZZ1 1ZZ","country":{"code":"GB","name":"United Kingdom"}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	got, err := p.ByID(context.Background(), "GB1")
	require.NoError(t, err)
	assert.Equal(t, "GB1", got.ID)
}

func TestHTTPProviderBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second)
	_, err := p.ByPostcode(context.Background(), "ZZ1 1ZZ", "")
	require.Error(t, err)
	assert.False(t, IsRetryable(err))
}
