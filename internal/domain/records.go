// Package domain contains the core data structures for the application.
// Every record is a plain value copied out of an API response at scrape
// time; nothing here holds a reference back to the transport layer.
package domain

// Repository holds the metadata of a single GitHub repository.
type Repository struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Owner       string   `json:"owner"`
	Description string   `json:"description"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Watchers    int      `json:"watchers"`
	OpenIssues  int      `json:"open_issues"`
	Language    string   `json:"language,omitempty"`
	License     string   `json:"license,omitempty"`
	Topics      []string `json:"topics"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	PushedAt    string   `json:"pushed_at"`
	URL         string   `json:"url"`
}

// Contributor is one entry of a repository's contributor listing.
// Login is unique within a single listing.
type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
	URL           string `json:"url"`
}

// Issue is a repository issue. Pull requests never appear here; the
// mapper drops anything carrying a pull_request marker before conversion.
type Issue struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	Author    string   `json:"author"`
	CreatedAt string   `json:"created_at"`
	ClosedAt  string   `json:"closed_at,omitempty"`
	Labels    []string `json:"labels"`
	Comments  int      `json:"comments"`
}

// UserProfile holds the fields of a user's profile endpoint that the
// analyzer consumes.
type UserProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

// CompositeRepo is the aggregate assembled from four independent
// endpoint fetches for one repository. It is only ever produced whole:
// if any sub-fetch fails the caller gets an error and no record.
type CompositeRepo struct {
	Repo         Repository       `json:"repo"`
	Contributors []Contributor    `json:"contributors"`
	Issues       []Issue          `json:"issues"`
	Languages    map[string]int64 `json:"languages"`
}

// StarSummary is a small distribution summary over the star counts of a
// user's repositories.
type StarSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// UserAnalysis is derived entirely from a user's profile and repository
// listing in a single scrape invocation.
type UserAnalysis struct {
	Username    string         `json:"username"`
	Name        string         `json:"name"`
	Bio         string         `json:"bio"`
	Followers   int            `json:"followers"`
	Following   int            `json:"following"`
	PublicRepos int            `json:"public_repos"`
	TotalStars  int            `json:"total_stars"`
	TotalForks  int            `json:"total_forks"`
	Languages   map[string]int `json:"languages"`
	TopRepos    []Repository   `json:"top_repos"`
	Stars       StarSummary    `json:"star_summary"`
}
