package gateway

import (
	"encoding/json"

	"github.com/oss-intel/github-intel/internal/domain"
)

// Mappers are pure and total: a malformed item is mapped with defaults
// for every field it failed to supply rather than aborting its
// siblings. Partial metadata beats dropping the entity, so the decode
// error is intentionally ignored and whatever fields did bind are kept.

func mapRepository(raw json.RawMessage) domain.Repository {
	var p repoPayload
	_ = json.Unmarshal(raw, &p)

	r := domain.Repository{
		Name:        p.Name,
		FullName:    p.FullName,
		Description: p.Description,
		Stars:       p.StargazersCount,
		Forks:       p.ForksCount,
		Watchers:    p.WatchersCount,
		OpenIssues:  p.OpenIssuesCount,
		Language:    p.Language,
		Topics:      p.Topics,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PushedAt:    p.PushedAt,
		URL:         p.HTMLURL,
	}
	if p.Owner != nil {
		r.Owner = p.Owner.Login
	}
	if p.License != nil {
		r.License = p.License.Name
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
	return r
}

func mapContributor(raw json.RawMessage) domain.Contributor {
	var p contributorPayload
	_ = json.Unmarshal(raw, &p)

	return domain.Contributor{
		Login:         p.Login,
		AvatarURL:     p.AvatarURL,
		Contributions: p.Contributions,
		URL:           p.HTMLURL,
	}
}

// mapIssue converts one raw issue item. The second return is false for
// items carrying a pull_request marker, which the issues endpoint mixes
// into its listing; those yield no record at all.
func mapIssue(raw json.RawMessage) (domain.Issue, bool) {
	var p issuePayload
	_ = json.Unmarshal(raw, &p)

	if len(p.PullRequest) > 0 && string(p.PullRequest) != "null" {
		return domain.Issue{}, false
	}

	issue := domain.Issue{
		Number:    p.Number,
		Title:     p.Title,
		State:     p.State,
		CreatedAt: p.CreatedAt,
		ClosedAt:  p.ClosedAt,
		Labels:    make([]string, 0, len(p.Labels)),
		Comments:  p.Comments,
	}
	if p.User != nil {
		issue.Author = p.User.Login
	}
	for _, l := range p.Labels {
		issue.Labels = append(issue.Labels, l.Name)
	}
	return issue, true
}

func mapUser(raw json.RawMessage) domain.UserProfile {
	var p userPayload
	_ = json.Unmarshal(raw, &p)

	return domain.UserProfile{
		Login:       p.Login,
		Name:        p.Name,
		Bio:         p.Bio,
		Followers:   p.Followers,
		Following:   p.Following,
		PublicRepos: p.PublicRepos,
	}
}

func mapStargazer(raw json.RawMessage) string {
	var p stargazerPayload
	_ = json.Unmarshal(raw, &p)
	return p.Login
}
