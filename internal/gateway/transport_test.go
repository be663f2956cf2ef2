package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_SetsDefaultHeaders(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport, err := NewTransport("", server.URL)
	require.NoError(t, err)
	defer transport.Close()

	_, err = transport.Do(context.Background(), http.MethodGet, "/repos/a/b", nil)
	require.NoError(t, err)

	assert.Equal(t, userAgent, got.Get("User-Agent"))
	assert.Equal(t, acceptHeader, got.Get("Accept"))
	assert.Empty(t, got.Get("Authorization"))
}

func TestTransport_SendsBearerToken(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport, err := NewTransport("test-token", server.URL)
	require.NoError(t, err)
	defer transport.Close()

	_, err = transport.Do(context.Background(), http.MethodGet, "/user", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", got)
}

func TestTransport_ReturnsResponseWholeOnErrorStatus(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRateRemaining, "42")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	transport, err := NewTransport("", server.URL)
	require.NoError(t, err)
	defer transport.Close()

	resp, err := transport.Do(context.Background(), http.MethodGet, "/repos/no/such", nil)

	// Interpreting the status is the caller's job; the transport only
	// fails on connection-level problems.
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "42", resp.Header.Get(headerRateRemaining))
	assert.Contains(t, string(resp.Body), "Not Found")
}

func TestTransport_PassesQueryParams(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport, err := NewTransport("", server.URL)
	require.NoError(t, err)
	defer transport.Close()

	params := url.Values{"per_page": {"30"}, "page": {"2"}}
	_, err = transport.Do(context.Background(), http.MethodGet, "/repos/a/b/issues", params)
	require.NoError(t, err)

	assert.Equal(t, "30", got.Get("per_page"))
	assert.Equal(t, "2", got.Get("page"))
}

func TestTransport_SurfacesNetworkError(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	transport, err := NewTransport("", server.URL)
	require.NoError(t, err)
	defer transport.Close()

	server.Close()

	_, err = transport.Do(context.Background(), http.MethodGet, "/repos/a/b", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "perform GET /repos/a/b")
}
