// Package gateway provides access to the GitHub REST API: a thin
// authenticated transport, a rate governor driven by quota headers, a
// generic paginator, and the mappers that turn raw payloads into domain
// records.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "github-intel/1.0"
	acceptHeader   = "application/vnd.github.v3+json"
	defaultTimeout = 30 * time.Second

	// TokenEnvVar names the environment variable consulted when no
	// token is supplied explicitly. An empty token is not an error, it
	// just yields the lower anonymous quota.
	TokenEnvVar = "GITHUB_TOKEN"
)

// HTTPError is returned when the API answers with a non-2xx status
// after all governor-driven waits have been applied. A 429 means the
// quota was exhausted despite the advisory throttling; it is not
// retried here.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("github api: %s returned status %d", e.URL, e.StatusCode)
}

// RateLimited reports whether the error is a hard quota rejection.
func (e *HTTPError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Response is the raw result of one transport call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport owns the single long-lived authenticated connection
// configuration. It must be created with NewTransport and closed
// exactly once when the caller is done, regardless of how the scrape
// terminated.
type Transport struct {
	baseURL string
	client  *http.Client
}

// NewTransport builds the http.Client the same way on every path: a
// secondary-rate-limit waiter at the bottom, and an oauth2 transport on
// top of it when a token is available. An empty token falls back to
// the TokenEnvVar environment variable.
func NewTransport(token, baseURL string) (*Transport, error) {
	if token == "" {
		token = os.Getenv(TokenEnvVar)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	waiter, err := github_ratelimit.NewRateLimitWaiter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var rt http.RoundTripper = waiter
	if token != "" {
		rt = &oauth2.Transport{
			Base:   waiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	return &Transport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Transport: rt, Timeout: defaultTimeout},
	}, nil
}

// Do performs one request against the API. It returns the response
// whole, whatever the status code; interpreting non-2xx statuses is the
// caller's job so that the governor can read the quota headers off
// every answer first. A connection or timeout failure surfaces as a
// wrapped transport error.
func (t *Transport) Do(ctx context.Context, method, path string, params url.Values) (*Response, error) {
	u := t.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response of %s %s: %w", method, path, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Close releases the connection pool. Safe to call from a deferred
// cleanup on every exit path; it only drops idle connections.
func (t *Transport) Close() {
	t.client.CloseIdleConnections()
}
