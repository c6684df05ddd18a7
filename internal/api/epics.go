package api

import (
	"context"
	"fmt"
)

// EpicDashboard returns per-epic item counts, completion, and
// estimates for the active project.
func (c *Client) EpicDashboard(ctx context.Context) (*EpicDashboard, error) {
	var dash EpicDashboard
	if err := c.get(ctx, "/api/projects/current/epics/dashboard", &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// EpicOptions lists the active project's epic definitions.
func (c *Client) EpicOptions(ctx context.Context) ([]EpicOption, error) {
	var options []EpicOption
	if err := c.get(ctx, "/api/projects/current/epics/options", &options); err != nil {
		return nil, err
	}
	return options, nil
}

// CreateEpicOption creates a new epic (a GitHub label on the server
// side).
func (c *Client) CreateEpicOption(ctx context.Context, create EpicOptionCreate) (*EpicOption, error) {
	var option EpicOption
	if err := c.post(ctx, "/api/projects/current/epics/options", create, &option); err != nil {
		return nil, err
	}
	return &option, nil
}

// UpdateEpicOption patches an epic definition.
func (c *Client) UpdateEpicOption(ctx context.Context, optionID string, update EpicOptionUpdate) (*EpicOption, error) {
	var option EpicOption
	path := fmt.Sprintf("/api/projects/current/epics/options/%s", optionID)
	if err := c.patch(ctx, path, update, &option); err != nil {
		return nil, err
	}
	return &option, nil
}

// DeleteEpicOption removes an epic definition.
func (c *Client) DeleteEpicOption(ctx context.Context, optionID string) error {
	return c.delete(ctx, fmt.Sprintf("/api/projects/current/epics/options/%s", optionID))
}
