package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"git.home.luguber.info/inful/gitgud/internal/retry"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

const githubPageSize = 100

// GitHubClient implements Client for GitHub.
type GitHubClient struct {
	*BaseForge
}

// NewGitHubClient creates a GitHub client. An empty apiURL means DefaultAPIURL.
func NewGitHubClient(apiURL, token string) (*GitHubClient, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, ErrInvalidURL.WithContext("api_url", apiURL).Wrap(err)
	}
	base := NewBaseForge(&http.Client{Timeout: 30 * time.Second}, apiURL, token)
	base.SetCustomHeader("Accept", "application/vnd.github+json")
	base.SetCustomHeader("X-GitHub-Api-Version", "2022-11-28")
	return &GitHubClient{BaseForge: base}, nil
}

// WithRetryPolicy replaces the default retry policy.
func (c *GitHubClient) WithRetryPolicy(p retry.Policy) *GitHubClient {
	c.SetRetryPolicy(p)
	return c
}

type githubOwner struct {
	Login string `json:"login"`
}

type githubRepo struct {
	Name     string      `json:"name"`
	FullName string      `json:"full_name"`
	Private  bool        `json:"private"`
	Archived bool        `json:"archived"`
	CloneURL string      `json:"clone_url"`
	Owner    githubOwner `json:"owner"`
}

type githubUser struct {
	Login string `json:"login"`
}

// ListUserRepositories returns every repository the authenticated user can access.
func (c *GitHubClient) ListUserRepositories(ctx context.Context) ([]Repository, error) {
	return fetchAllPages(githubPageSize, func(page int) ([]Repository, error) {
		endpoint := fmt.Sprintf("/user/repos?per_page=%d&page=%d", githubPageSize, page)
		req, err := c.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		var raw []githubRepo
		if err := c.DoRequest(req, &raw); err != nil {
			return nil, err
		}
		repos := make([]Repository, 0, len(raw))
		for _, r := range raw {
			repos = append(repos, Repository{
				Name:     r.Name,
				FullName: r.FullName,
				Owner:    r.Owner.Login,
				CloneURL: r.CloneURL,
				Private:  r.Private,
				Archived: r.Archived,
			})
		}
		return repos, nil
	})
}

// ListCollaborators returns every collaborator of owner/repo.
func (c *GitHubClient) ListCollaborators(ctx context.Context, owner, repo string) ([]Collaborator, error) {
	return fetchAllPages(githubPageSize, func(page int) ([]Collaborator, error) {
		endpoint := fmt.Sprintf("/repos/%s/%s/collaborators?per_page=%d&page=%d", owner, repo, githubPageSize, page)
		req, err := c.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		var raw []githubUser
		if err := c.DoRequest(req, &raw); err != nil {
			return nil, err
		}
		out := make([]Collaborator, 0, len(raw))
		for _, u := range raw {
			out = append(out, Collaborator{Login: u.Login})
		}
		return out, nil
	})
}

// RemoveCollaborator revokes login's access to owner/repo.
func (c *GitHubClient) RemoveCollaborator(ctx context.Context, owner, repo, login string) error {
	req, err := c.NewRequest(ctx, http.MethodDelete, collaboratorPath(owner, repo, login), nil)
	if err != nil {
		return err
	}
	return c.DoRequest(req, nil)
}

// AddCollaborator grants login access to owner/repo with permission.
func (c *GitHubClient) AddCollaborator(ctx context.Context, owner, repo, login, permission string) error {
	var body any
	if permission != "" {
		body = map[string]string{"permission": permission}
	}
	req, err := c.NewRequest(ctx, http.MethodPut, collaboratorPath(owner, repo, login), body)
	if err != nil {
		return err
	}
	return c.DoRequest(req, nil)
}

func collaboratorPath(owner, repo, login string) string {
	return fmt.Sprintf("/repos/%s/%s/collaborators/%s", owner, repo, login)
}
