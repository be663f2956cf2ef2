package gateway

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_FetchRepository(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		check          func(t *testing.T, err error, g *Gateway)
		expectError    bool
		expectedStatus int
	}{
		{
			name: "happy path - maps the repository payload",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/facebook/react", r.URL.Path)
				fmt.Fprint(w, `{"name":"react","full_name":"facebook/react","stargazers_count":220000,"language":"JavaScript","topics":["ui","react"]}`)
			},
		},
		{
			name: "error case - server error becomes an HTTPError",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError:    true,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "error case - not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, _ := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))

			repo, err := gw.FetchRepository(context.Background(), "facebook", "react")

			if tc.expectError {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tc.expectedStatus, httpErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 220000, repo.Stars)
			assert.Equal(t, "JavaScript", repo.Language)
			assert.Equal(t, []string{"ui", "react"}, repo.Topics)
			assert.Empty(t, repo.License)
			assert.Equal(t, "facebook", repo.Owner)
		})
	}
}

func TestGateway_FetchIssuesFiltersPullRequests(t *testing.T) {
	gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/a/b/issues", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		fmt.Fprint(w, `[
			{"number": 1, "title": "issue one", "state": "open"},
			{"number": 2, "title": "sneaky PR", "state": "open", "pull_request": {"url": "x"}},
			{"number": 3, "title": "issue three", "state": "open"}
		]`)
	}))

	issues, err := gw.FetchIssues(context.Background(), "a", "b", "open", 30)

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, 1, issues[0].Number)
	assert.Equal(t, 3, issues[1].Number)
}

func TestGateway_FetchLanguages(t *testing.T) {
	gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/a/b/languages", r.URL.Path)
		fmt.Fprint(w, `{"Go": 123456, "Makefile": 789}`)
	}))

	languages, err := gw.FetchLanguages(context.Background(), "a", "b")

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Go": 123456, "Makefile": 789}, languages)
}

func TestGateway_SearchRepositories(t *testing.T) {
	gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "stars:>100 language:go", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		fmt.Fprint(w, `{"total_count": 2, "items": [
			{"full_name": "golang/go", "stargazers_count": 120000},
			{"full_name": "gin-gonic/gin", "stargazers_count": 77000}
		]}`)
	}))

	repos, err := gw.SearchRepositories(context.Background(), "stars:>100 language:go", "stars", 50)

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "golang/go", repos[0].FullName)
	assert.Equal(t, 77000, repos[1].Stars)
}

func TestGateway_FetchStargazers(t *testing.T) {
	gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/a/b/stargazers", r.URL.Path)
		fmt.Fprint(w, `[{"login": "alice"}, {"login": "bob"}]`)
	}))

	logins, err := gw.FetchStargazers(context.Background(), "a", "b", 100)

	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, logins)
}

func TestGateway_FetchUser(t *testing.T) {
	gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/torvalds", r.URL.Path)
		fmt.Fprint(w, `{"login": "torvalds", "name": "Linus Torvalds", "followers": 200000}`)
	}))

	profile, err := gw.FetchUser(context.Background(), "torvalds")

	require.NoError(t, err)
	assert.Equal(t, "Linus Torvalds", profile.Name)
	assert.Equal(t, 200000, profile.Followers)
}

func TestGateway_QuotaHeadersScheduleAPause(t *testing.T) {
	gw, _ := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRateRemaining, "2")
		w.Header().Set(headerRateReset, fmt.Sprint(time.Now().Unix()+30))
		fmt.Fprint(w, `{"login": "alice"}`)
	}))

	_, err := gw.FetchUser(context.Background(), "alice")
	require.NoError(t, err)

	// The governor picked the pause up off the response headers.
	gw.governor.mu.Lock()
	defer gw.governor.mu.Unlock()
	assert.False(t, gw.governor.resumeAt.IsZero())
}
