package api

import (
	"context"
	"fmt"
)

// Projects lists the projects the user can access.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/api/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CurrentProject returns the active project via GET /api/projects/current.
func (c *Client) CurrentProject(ctx context.Context) (*Project, error) {
	var project Project
	if err := c.get(ctx, "/api/projects/current", &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Items lists the active project's items with optional filters.
func (c *Client) Items(ctx context.Context, filter ItemFilter) ([]ProjectItem, error) {
	var items []ProjectItem
	q := queryString(map[string]string{
		"status":    filter.Status,
		"iteration": filter.Iteration,
		"epic":      filter.Epic,
		"search":    filter.Search,
	})
	if err := c.get(ctx, "/api/projects/current/items"+q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem patches an item's editable fields. The server answers 409
// when the item changed on GitHub after update.RemoteUpdatedAt.
func (c *Client) UpdateItem(ctx context.Context, itemID int, update ItemUpdate) (*ProjectItem, error) {
	var item ProjectItem
	path := fmt.Sprintf("/api/projects/current/items/%d", itemID)
	if err := c.patch(ctx, path, update, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemDetails fetches the GitHub content behind an item. The server
// answers 400 for drafts, which have no GitHub content.
func (c *Client) ItemDetails(ctx context.Context, itemID int) (*ItemDetail, error) {
	var detail ItemDetail
	path := fmt.Sprintf("/api/projects/current/items/%d/details", itemID)
	if err := c.get(ctx, path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ItemComments lists the comments on an item's GitHub content, oldest
// first. Drafts have none.
func (c *Client) ItemComments(ctx context.Context, itemID int) ([]ItemComment, error) {
	var comments []ItemComment
	path := fmt.Sprintf("/api/projects/current/items/%d/comments", itemID)
	if err := c.get(ctx, path, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Hierarchy returns the epic → story → task tree for the active
// project.
func (c *Client) Hierarchy(ctx context.Context) (*Hierarchy, error) {
	var h Hierarchy
	if err := c.get(ctx, "/api/projects/current/hierarchy", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// IterationDashboard returns per-sprint summaries and configured
// iterations.
func (c *Client) IterationDashboard(ctx context.Context) (*IterationDashboard, error) {
	var dash IterationDashboard
	if err := c.get(ctx, "/api/projects/current/iterations/dashboard", &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// SetStatusColumns replaces the configured board columns. The server
// strips "done" variants from the list and re-appends a final "Done".
func (c *Client) SetStatusColumns(ctx context.Context, columns []string) ([]string, error) {
	var out []string
	body := map[string][]string{"columns": columns}
	if err := c.post(ctx, "/api/projects/current/statuses", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Sync asks the server to re-pull project data from GitHub.
func (c *Client) Sync(ctx context.Context, projectID int) error {
	return c.post(ctx, fmt.Sprintf("/api/github/sync/%d", projectID), nil, nil)
}
