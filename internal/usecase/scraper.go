// Package usecase contains the business logic of the application: the
// aggregation of independent endpoint fetches into composite records.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/oss-intel/github-intel/internal/domain"
	"github.com/oss-intel/github-intel/internal/gateway"
)

// Caps applied when the caller does not supply one. User repos and
// search follow the remote page maximum; contributors and issues use
// the listing defaults of the repository aggregate.
const (
	DefaultContributorLimit = 30
	DefaultIssueLimit       = 30
	DefaultUserRepoLimit    = 100
	DefaultSearchLimit      = 100
	DefaultStargazerLimit   = 1000

	topRepoCount = 10
)

// Scraper orchestrates the fetching and combining of data for one
// entity at a time.
type Scraper struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewScraper creates a new Scraper instance.
func NewScraper(fetcher gateway.Fetcher, logger *log.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		logger:  logger,
	}
}

// ScrapeRepo assembles the composite record for one repository:
// metadata, then contributors, issues and the language breakdown, in
// that order. The first sub-fetch failure aborts the whole aggregate;
// no partial record is ever returned. Callers wanting partial results
// must hit the individual fetches themselves.
func (s *Scraper) ScrapeRepo(ctx context.Context, owner, name string) (*domain.CompositeRepo, error) {
	s.logger.Printf("scraping %s/%s", owner, name)

	repo, err := s.fetcher.FetchRepository(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("fetch repository %s/%s: %w", owner, name, err)
	}

	contributors, err := s.fetcher.FetchContributors(ctx, owner, name, DefaultContributorLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch contributors of %s/%s: %w", owner, name, err)
	}

	issues, err := s.fetcher.FetchIssues(ctx, owner, name, "open", DefaultIssueLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch issues of %s/%s: %w", owner, name, err)
	}

	languages, err := s.fetcher.FetchLanguages(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("fetch languages of %s/%s: %w", owner, name, err)
	}

	s.logger.Printf("scraped %s/%s: %d contributors, %d issues", owner, name, len(contributors), len(issues))
	return &domain.CompositeRepo{
		Repo:         repo,
		Contributors: contributors,
		Issues:       issues,
		Languages:    languages,
	}, nil
}

// ScrapeRepos scrapes several repositories concurrently, at most
// concurrency at a time. fullNames entries are "owner/name" strings.
// The first failing aggregate cancels the remaining ones.
func (s *Scraper) ScrapeRepos(ctx context.Context, fullNames []string, concurrency int) ([]*domain.CompositeRepo, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*domain.CompositeRepo, len(fullNames))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, fullName := range fullNames {
		i := i
		owner, name, err := SplitFullName(fullName)
		if err != nil {
			return nil, err
		}
		eg.Go(func() error {
			record, err := s.ScrapeRepo(egCtx, owner, name)
			if err != nil {
				return err
			}
			results[i] = record
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AnalyzeUser derives a user analysis from the profile and the owned
// repository listing: star and fork totals, a repo count per primary
// language (repos without one are excluded), the top repositories by
// stars with ties broken by listing order, and a star distribution
// summary.
func (s *Scraper) AnalyzeUser(ctx context.Context, login string) (*domain.UserAnalysis, error) {
	s.logger.Printf("analyzing user %s", login)

	profile, err := s.fetcher.FetchUser(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", login, err)
	}

	repos, err := s.fetcher.FetchUserRepos(ctx, login, DefaultUserRepoLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch repositories of %s: %w", login, err)
	}

	analysis := &domain.UserAnalysis{
		Username:    login,
		Name:        profile.Name,
		Bio:         profile.Bio,
		Followers:   profile.Followers,
		Following:   profile.Following,
		PublicRepos: profile.PublicRepos,
		Languages:   make(map[string]int),
	}

	starCounts := make([]float64, 0, len(repos))
	for _, repo := range repos {
		analysis.TotalStars += repo.Stars
		analysis.TotalForks += repo.Forks
		starCounts = append(starCounts, float64(repo.Stars))
		if repo.Language != "" {
			analysis.Languages[repo.Language]++
		}
	}

	top := make([]domain.Repository, len(repos))
	copy(top, repos)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Stars > top[j].Stars
	})
	if len(top) > topRepoCount {
		top = top[:topRepoCount]
	}
	analysis.TopRepos = top

	if len(starCounts) > 0 {
		analysis.Stars.Mean, _ = stats.Mean(starCounts)
		analysis.Stars.Median, _ = stats.Median(starCounts)
	}
	return analysis, nil
}

// SearchTrending finds repositories above 100 stars, optionally
// restricted to one language, sorted by star count descending.
func (s *Scraper) SearchTrending(ctx context.Context, language string, limit int) ([]domain.Repository, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	query := "stars:>100"
	if language != "" {
		query += " language:" + language
	}
	s.logger.Printf("searching trending repos: %q", query)

	repos, err := s.fetcher.SearchRepositories(ctx, query, "stars", limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return repos, nil
}

// ListStargazers lists the logins of a repository's stargazers.
func (s *Scraper) ListStargazers(ctx context.Context, owner, name string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultStargazerLimit
	}

	logins, err := s.fetcher.FetchStargazers(ctx, owner, name, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch stargazers of %s/%s: %w", owner, name, err)
	}
	return logins, nil
}

// SplitFullName splits "owner/name" into its parts.
func SplitFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository name %q, want owner/name", fullName)
	}
	return owner, name, nil
}
