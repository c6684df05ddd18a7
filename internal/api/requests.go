package api

import (
	"context"
	"fmt"
)

// Requests lists change requests, optionally filtered by status.
func (c *Client) Requests(ctx context.Context, status string) ([]ChangeRequest, error) {
	var requests []ChangeRequest
	q := queryString(map[string]string{"status": status})
	if err := c.get(ctx, "/api/requests"+q, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Request fetches a single change request.
func (c *Client) Request(ctx context.Context, id string) (*ChangeRequest, error) {
	var request ChangeRequest
	if err := c.get(ctx, "/api/requests/"+id, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateRequest submits a new change request in pending status.
func (c *Client) CreateRequest(ctx context.Context, create ChangeRequestCreate) (*ChangeRequest, error) {
	var request ChangeRequest
	if err := c.post(ctx, "/api/requests", create, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// ApproveRequest approves a pending change request; the server may
// also create a GitHub issue, moving the request to converted.
func (c *Client) ApproveRequest(ctx context.Context, id string, approve ChangeRequestApprove) (*ChangeRequest, error) {
	var request ChangeRequest
	if err := c.post(ctx, fmt.Sprintf("/api/requests/%s/approve", id), approve, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// RejectRequest rejects a pending change request. Review notes are
// mandatory.
func (c *Client) RejectRequest(ctx context.Context, id, notes string) (*ChangeRequest, error) {
	var request ChangeRequest
	body := map[string]string{"review_notes": notes}
	if err := c.post(ctx, fmt.Sprintf("/api/requests/%s/reject", id), body, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// RequestStats returns counts per change-request status.
func (c *Client) RequestStats(ctx context.Context) (*ChangeRequestStats, error) {
	var stats ChangeRequestStats
	if err := c.get(ctx, "/api/requests/stats/summary", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
