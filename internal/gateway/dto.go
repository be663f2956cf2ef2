package gateway

import "encoding/json"

// Raw payload shapes, one per remote resource. Field names follow the
// GitHub REST API; everything not listed is ignored at decode time.

type ownerPayload struct {
	Login string `json:"login"`
}

type licensePayload struct {
	Name string `json:"name"`
}

type repoPayload struct {
	Name            string          `json:"name"`
	FullName        string          `json:"full_name"`
	Owner           *ownerPayload   `json:"owner"`
	Description     string          `json:"description"`
	StargazersCount int             `json:"stargazers_count"`
	ForksCount      int             `json:"forks_count"`
	WatchersCount   int             `json:"watchers_count"`
	OpenIssuesCount int             `json:"open_issues_count"`
	Language        string          `json:"language"`
	License         *licensePayload `json:"license"`
	Topics          []string        `json:"topics"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	PushedAt        string          `json:"pushed_at"`
	HTMLURL         string          `json:"html_url"`
}

type contributorPayload struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
	HTMLURL       string `json:"html_url"`
}

type labelPayload struct {
	Name string `json:"name"`
}

type issuePayload struct {
	Number    int            `json:"number"`
	Title     string         `json:"title"`
	State     string         `json:"state"`
	User      *ownerPayload  `json:"user"`
	CreatedAt string         `json:"created_at"`
	ClosedAt  string         `json:"closed_at"`
	Labels    []labelPayload `json:"labels"`
	Comments  int            `json:"comments"`

	// Non-nil on items that are really pull requests in disguise.
	PullRequest json.RawMessage `json:"pull_request"`
}

type userPayload struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

type stargazerPayload struct {
	Login string `json:"login"`
}

// searchPayload is the envelope the search endpoint wraps its page in.
// TotalCount is deliberately not consulted for pagination; the short
// page and the caller's cap are the only stopping conditions.
type searchPayload struct {
	TotalCount        int               `json:"total_count"`
	IncompleteResults bool              `json:"incomplete_results"`
	Items             []json.RawMessage `json:"items"`
}
