package api

import (
	"context"
	"fmt"
)

// Members lists a project's members.
func (c *Client) Members(ctx context.Context, projectID int) ([]Member, error) {
	var members []Member
	if err := c.get(ctx, fmt.Sprintf("/api/projects/%d/members", projectID), &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds an existing user to a project with a role.
func (c *Client) AddMember(ctx context.Context, projectID int, userID, role string) (*Member, error) {
	var member Member
	body := map[string]string{"user_id": userID, "role": role}
	if err := c.post(ctx, fmt.Sprintf("/api/projects/%d/members", projectID), body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a member's project role.
func (c *Client) UpdateMemberRole(ctx context.Context, projectID, memberID int, role string) (*Member, error) {
	var member Member
	body := map[string]string{"role": role}
	path := fmt.Sprintf("/api/projects/%d/members/%d", projectID, memberID)
	if err := c.patch(ctx, path, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveMember removes a member from a project.
func (c *Client) RemoveMember(ctx context.Context, projectID, memberID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/projects/%d/members/%d", projectID, memberID))
}

// Invites lists a project's invites.
func (c *Client) Invites(ctx context.Context, projectID int) ([]Invite, error) {
	var invites []Invite
	if err := c.get(ctx, fmt.Sprintf("/api/projects/%d/invites", projectID), &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// CreateInvite invites an email address to join a project with a role.
func (c *Client) CreateInvite(ctx context.Context, projectID int, email, role string) (*Invite, error) {
	var invite Invite
	body := map[string]string{"email": email, "role": role}
	if err := c.post(ctx, fmt.Sprintf("/api/projects/%d/invites", projectID), body, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// CancelInvite cancels a pending invite. Accepted and rejected invites
// are terminal and cannot be cancelled.
func (c *Client) CancelInvite(ctx context.Context, projectID, inviteID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/projects/%d/invites/%d", projectID, inviteID))
}
