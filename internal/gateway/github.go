package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/oss-intel/github-intel/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information
// from GitHub. The aggregator depends on this interface, not on the
// concrete gateway, so tests can substitute a mock.
type Fetcher interface {
	FetchRepository(ctx context.Context, owner, name string) (domain.Repository, error)
	FetchContributors(ctx context.Context, owner, name string, limit int) ([]domain.Contributor, error)
	FetchIssues(ctx context.Context, owner, name, state string, limit int) ([]domain.Issue, error)
	FetchLanguages(ctx context.Context, owner, name string) (map[string]int64, error)
	FetchUser(ctx context.Context, login string) (domain.UserProfile, error)
	FetchUserRepos(ctx context.Context, login string, limit int) ([]domain.Repository, error)
	FetchStargazers(ctx context.Context, owner, name string, limit int) ([]string, error)
	SearchRepositories(ctx context.Context, query, sort string, limit int) ([]domain.Repository, error)
}

// Gateway is the concrete Fetcher backed by the GitHub REST API.
type Gateway struct {
	transport *Transport
	governor  *Governor
	logger    *log.Logger
}

// Option configures a Gateway.
type Option func(*options)

type options struct {
	baseURL   string
	pacingRPS float64
}

// WithBaseURL overrides the API base URL, mainly for tests against a
// local server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithPacingRPS enables proactive request pacing at the given rate.
func WithPacingRPS(rps float64) Option {
	return func(o *options) { o.pacingRPS = rps }
}

// NewGateway opens the transport. The caller owns the returned gateway
// and must Close it exactly once on every exit path.
func NewGateway(token string, logger *log.Logger, opts ...Option) (*Gateway, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	transport, err := NewTransport(token, o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	var govOpts []GovernorOption
	if o.pacingRPS > 0 {
		govOpts = append(govOpts, WithPacing(o.pacingRPS))
	}

	return &Gateway{
		transport: transport,
		governor:  NewGovernor(govOpts...),
		logger:    logger,
	}, nil
}

// Close releases the transport's connection pool.
func (g *Gateway) Close() {
	g.transport.Close()
}

// get funnels every fetch through the governor gate, performs the
// request, and feeds the response headers back to the governor before
// the status is interpreted. Quota headers are read even off error
// responses.
func (g *Gateway) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := g.governor.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := g.transport.Do(ctx, http.MethodGet, path, params)
	if err != nil {
		return nil, err
	}

	if wait := g.governor.Observe(resp.Header); wait > 0 {
		g.logger.Printf("rate limit low, next request delayed %s", wait.Round(time.Second))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: path}
	}
	return resp.Body, nil
}

// FetchRepository gets a single repository's metadata.
func (g *Gateway) FetchRepository(ctx context.Context, owner, name string) (domain.Repository, error) {
	body, err := g.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, name), nil)
	if err != nil {
		return domain.Repository{}, err
	}

	repo := mapRepository(body)
	if repo.Owner == "" {
		repo.Owner = owner
	}
	return repo, nil
}

// FetchContributors lists up to limit contributors of a repository.
func (g *Gateway) FetchContributors(ctx context.Context, owner, name string, limit int) ([]domain.Contributor, error) {
	raw, err := g.paginate(ctx, fmt.Sprintf("/repos/%s/%s/contributors", owner, name), nil, maxPageSize, limit, false)
	if err != nil {
		return nil, err
	}

	contributors := make([]domain.Contributor, 0, len(raw))
	for _, item := range raw {
		contributors = append(contributors, mapContributor(item))
	}
	return contributors, nil
}

// FetchIssues lists up to limit issues in the given state. Pull
// requests returned by the endpoint are filtered out, so the result may
// be shorter than the number of items fetched.
func (g *Gateway) FetchIssues(ctx context.Context, owner, name, state string, limit int) ([]domain.Issue, error) {
	params := url.Values{"state": {state}}
	raw, err := g.paginate(ctx, fmt.Sprintf("/repos/%s/%s/issues", owner, name), params, maxPageSize, limit, false)
	if err != nil {
		return nil, err
	}

	issues := make([]domain.Issue, 0, len(raw))
	for _, item := range raw {
		if issue, ok := mapIssue(item); ok {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// FetchLanguages gets the byte count per language of a repository.
func (g *Gateway) FetchLanguages(ctx context.Context, owner, name string) (map[string]int64, error) {
	body, err := g.get(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, name), nil)
	if err != nil {
		return nil, err
	}

	languages := make(map[string]int64)
	if err := json.Unmarshal(body, &languages); err != nil {
		return nil, fmt.Errorf("decode language breakdown of %s/%s: %w", owner, name, err)
	}
	return languages, nil
}

// FetchUser gets a user's profile.
func (g *Gateway) FetchUser(ctx context.Context, login string) (domain.UserProfile, error) {
	body, err := g.get(ctx, "/users/"+login, nil)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return mapUser(body), nil
}

// FetchUserRepos lists up to limit repositories owned by a user.
func (g *Gateway) FetchUserRepos(ctx context.Context, login string, limit int) ([]domain.Repository, error) {
	params := url.Values{"sort": {"updated"}}
	raw, err := g.paginate(ctx, fmt.Sprintf("/users/%s/repos", login), params, maxPageSize, limit, false)
	if err != nil {
		return nil, err
	}

	repos := make([]domain.Repository, 0, len(raw))
	for _, item := range raw {
		repos = append(repos, mapRepository(item))
	}
	return repos, nil
}

// FetchStargazers lists the logins of up to limit stargazers.
func (g *Gateway) FetchStargazers(ctx context.Context, owner, name string, limit int) ([]string, error) {
	raw, err := g.paginate(ctx, fmt.Sprintf("/repos/%s/%s/stargazers", owner, name), nil, maxPageSize, limit, false)
	if err != nil {
		return nil, err
	}

	logins := make([]string, 0, len(raw))
	for _, item := range raw {
		logins = append(logins, mapStargazer(item))
	}
	return logins, nil
}

// SearchRepositories runs a repository search and maps up to limit
// results in the order the API returned them.
func (g *Gateway) SearchRepositories(ctx context.Context, query, sort string, limit int) ([]domain.Repository, error) {
	params := url.Values{"q": {query}, "sort": {sort}}
	raw, err := g.paginate(ctx, "/search/repositories", params, maxPageSize, limit, true)
	if err != nil {
		return nil, err
	}

	repos := make([]domain.Repository, 0, len(raw))
	for _, item := range raw {
		repos = append(repos, mapRepository(item))
	}
	return repos, nil
}
