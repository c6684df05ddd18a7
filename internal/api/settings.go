package api

import "context"

// SetGitHubToken stores the account's GitHub token on the server.
func (c *Client) SetGitHubToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.post(ctx, "/api/settings/github-token", body, nil)
}

// HasGitHubToken reports whether a token is configured for the
// account.
func (c *Client) HasGitHubToken(ctx context.Context) (bool, error) {
	var out struct {
		Configured bool `json:"configured"`
	}
	if err := c.get(ctx, "/api/settings/github-token", &out); err != nil {
		return false, err
	}
	return out.Configured, nil
}

// BindGitHubProject binds the account to a GitHub Project by owner and
// number.
func (c *Client) BindGitHubProject(ctx context.Context, owner string, number int) (*Project, error) {
	var project Project
	body := map[string]any{"owner": owner, "project_number": number}
	if err := c.post(ctx, "/api/settings/github-project", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// AvailableGitHubProjects lists the GitHub projects the configured
// token can see, for binding.
func (c *Client) AvailableGitHubProjects(ctx context.Context) ([]ProjectSummary, error) {
	var projects []ProjectSummary
	if err := c.get(ctx, "/api/settings/github-projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
