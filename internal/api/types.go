package api

import "time"

// Roles a user or project member can hold, least to most privileged.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RolePM     = "pm"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

// User is the authenticated account user returned by /api/me.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name,omitempty"`
	Role              string `json:"role"`
	AccountID         string `json:"account_id,omitempty"`
	NeedsAccountSetup bool   `json:"needs_account_setup"`
}

// Project is a GitHub Project v2 bound to the account.
type Project struct {
	ID            int        `json:"id"`
	OwnerLogin    string     `json:"owner_login"`
	ProjectNumber int        `json:"project_number"`
	ProjectNodeID string     `json:"project_node_id,omitempty"`
	Name          string     `json:"name,omitempty"`
	StatusColumns []string   `json:"status_columns,omitempty"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
}

// ProjectSummary is a candidate GitHub project discovered for binding.
type ProjectSummary struct {
	NodeID    string     `json:"node_id"`
	Number    int        `json:"number"`
	Title     string     `json:"title,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ProjectItem is a row of the bound project: an issue, pull request, or
// draft with its field values.
type ProjectItem struct {
	ID              int            `json:"id"`
	ItemNodeID      string         `json:"item_node_id"`
	ContentType     string         `json:"content_type,omitempty"`
	Title           string         `json:"title,omitempty"`
	Status          string         `json:"status,omitempty"`
	Iteration       string         `json:"iteration,omitempty"`
	IterationID     string         `json:"iteration_id,omitempty"`
	IterationStart  *time.Time     `json:"iteration_start,omitempty"`
	IterationEnd    *time.Time     `json:"iteration_end,omitempty"`
	Estimate        *float64       `json:"estimate,omitempty"`
	URL             string         `json:"url,omitempty"`
	Assignees       []string       `json:"assignees,omitempty"`
	StartDate       *time.Time     `json:"start_date,omitempty"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	DueDate         *time.Time     `json:"due_date,omitempty"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
	RemoteUpdatedAt *time.Time     `json:"remote_updated_at,omitempty"`
	EpicName        string         `json:"epic_name,omitempty"`
	FieldValues     map[string]any `json:"field_values,omitempty"`
}

// ItemAuthor is the GitHub author of an item's content.
type ItemAuthor struct {
	Login     string `json:"login,omitempty"`
	URL       string `json:"url,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ItemLabel is a GitHub label on an item's content.
type ItemLabel struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ItemDetail is the GitHub-side content behind an item: body, state,
// author, and labels, fetched live from GitHub by the server.
type ItemDetail struct {
	ID          string      `json:"id"`
	ContentType string      `json:"content_type,omitempty"`
	Number      *int        `json:"number,omitempty"`
	Title       string      `json:"title,omitempty"`
	Body        string      `json:"body,omitempty"`
	BodyText    string      `json:"body_text,omitempty"`
	State       string      `json:"state,omitempty"`
	Merged      *bool       `json:"merged,omitempty"`
	URL         string      `json:"url,omitempty"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
	Author      *ItemAuthor `json:"author,omitempty"`
	Labels      []ItemLabel `json:"labels,omitempty"`
}

// ItemComment is one comment on an item's GitHub content.
type ItemComment struct {
	ID              string     `json:"id"`
	Body            string     `json:"body"`
	Author          string     `json:"author,omitempty"`
	AuthorURL       string     `json:"author_url,omitempty"`
	AuthorAvatarURL string     `json:"author_avatar_url,omitempty"`
	URL             string     `json:"url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ItemFilter narrows an item listing. Zero values mean no filter.
type ItemFilter struct {
	Status    string
	Iteration string
	Epic      string
	Search    string
}

// ItemUpdate is the PATCH payload for editable item fields. Dates are
// ISO 8601 strings; RemoteUpdatedAt lets the server detect edits that
// raced with a GitHub-side change.
type ItemUpdate struct {
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	DueDate         *string `json:"due_date,omitempty"`
	IterationID     *string `json:"iteration_id,omitempty"`
	IterationTitle  *string `json:"iteration_title,omitempty"`
	RemoteUpdatedAt *string `json:"remote_updated_at,omitempty"`
}

// HierarchyItem is a node of the epic → story → task tree. Children is
// self-referential; the server guarantees each item appears once.
type HierarchyItem struct {
	ID           int             `json:"id"`
	ItemNodeID   string          `json:"item_node_id"`
	Title        string          `json:"title,omitempty"`
	ItemType     string          `json:"item_type,omitempty"`
	Status       string          `json:"status,omitempty"`
	EpicName     string          `json:"epic_name,omitempty"`
	ParentItemID *int            `json:"parent_item_id,omitempty"`
	Labels       []string        `json:"labels,omitempty"`
	Children     []HierarchyItem `json:"children,omitempty"`
}

// HierarchyEpic groups root items under an epic option.
type HierarchyEpic struct {
	EpicOptionID string          `json:"epic_option_id,omitempty"`
	EpicName     string          `json:"epic_name,omitempty"`
	Items        []HierarchyItem `json:"items"`
}

// Hierarchy is the full tree response: epic groups plus items without
// an epic.
type Hierarchy struct {
	Epics   []HierarchyEpic `json:"epics"`
	Orphans []HierarchyItem `json:"orphans,omitempty"`
}

// EpicOption is an epic definition backed by a GitHub label.
type EpicOption struct {
	ID          int    `json:"id"`
	ProjectID   int    `json:"project_id,omitempty"`
	OptionID    string `json:"option_id,omitempty"`
	OptionName  string `json:"option_name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// EpicOptionCreate is the payload for creating an epic option.
type EpicOptionCreate struct {
	OptionName  string `json:"option_name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// EpicOptionUpdate is the PATCH payload for an epic option.
type EpicOptionUpdate struct {
	OptionName  *string `json:"option_name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// StatusBreakdown is a per-status slice of an iteration summary.
type StatusBreakdown struct {
	Status        string  `json:"status,omitempty"`
	Count         int     `json:"count"`
	TotalEstimate float64 `json:"total_estimate"`
}

// IterationSummary aggregates one sprint's items.
type IterationSummary struct {
	IterationID       string            `json:"iteration_id,omitempty"`
	Name              string            `json:"name"`
	StartDate         *time.Time        `json:"start_date,omitempty"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	ItemCount         int               `json:"item_count"`
	CompletedCount    int               `json:"completed_count"`
	TotalEstimate     float64           `json:"total_estimate"`
	CompletedEstimate float64           `json:"completed_estimate"`
	StatusBreakdown   []StatusBreakdown `json:"status_breakdown,omitempty"`
}

// IterationOption is a configured sprint of the project.
type IterationOption struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// IterationDashboard is the sprint dashboard response.
type IterationDashboard struct {
	Summaries []IterationSummary `json:"summaries"`
	Options   []IterationOption  `json:"options"`
}

// EpicSummary aggregates one epic's items. A nil EpicOptionID means
// the bucket of items without an epic.
type EpicSummary struct {
	EpicOptionID      *string           `json:"epic_option_id,omitempty"`
	Name              string            `json:"name"`
	ItemCount         int               `json:"item_count"`
	CompletedCount    int               `json:"completed_count"`
	TotalEstimate     float64           `json:"total_estimate"`
	CompletedEstimate float64           `json:"completed_estimate"`
	StatusBreakdown   []StatusBreakdown `json:"status_breakdown,omitempty"`
}

// EpicDashboard is the epic dashboard response.
type EpicDashboard struct {
	Summaries []EpicSummary `json:"summaries"`
	Options   []EpicOption  `json:"options"`
}

// Member is a user's membership in a project.
type Member struct {
	ID        int        `json:"id"`
	UserID    string     `json:"user_id"`
	ProjectID int        `json:"project_id"`
	Role      string     `json:"role"`
	UserEmail string     `json:"user_email,omitempty"`
	UserName  string     `json:"user_name,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Invite statuses. Accepted and rejected are terminal; the inviter may
// cancel a pending invite.
const (
	InviteStatusPending   = "pending"
	InviteStatusAccepted  = "accepted"
	InviteStatusRejected  = "rejected"
	InviteStatusCancelled = "cancelled"
)

// Invite is a pending offer of project membership sent by email.
type Invite struct {
	ID              int        `json:"id"`
	ProjectID       int        `json:"project_id"`
	ProjectName     string     `json:"project_name,omitempty"`
	ProjectOwner    string     `json:"project_owner,omitempty"`
	ProjectNumber   int        `json:"project_number,omitempty"`
	InvitedEmail    string     `json:"invited_email"`
	InvitedByUserID string     `json:"invited_by_user_id"`
	InvitedByEmail  string     `json:"invited_by_email,omitempty"`
	InvitedByName   string     `json:"invited_by_name,omitempty"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// Change-request statuses. Pending requests are approved or rejected
// (terminal); an approved request becomes converted once a GitHub
// issue is created from it.
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusConverted = "converted"
)

// ChangeRequest is an internally tracked proposal that may be approved
// into a GitHub issue.
type ChangeRequest struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Impact             string     `json:"impact,omitempty"`
	Priority           string     `json:"priority"`
	RequestType        string     `json:"request_type,omitempty"`
	Status             string     `json:"status"`
	CreatorName        string     `json:"creator_name,omitempty"`
	ReviewerName       string     `json:"reviewer_name,omitempty"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes        string     `json:"review_notes,omitempty"`
	GitHubIssueNumber  *int       `json:"github_issue_number,omitempty"`
	GitHubIssueURL     string     `json:"github_issue_url,omitempty"`
	ConvertedAt        *time.Time `json:"converted_at,omitempty"`
	SuggestedEpic      string     `json:"suggested_epic,omitempty"`
	SuggestedIteration string     `json:"suggested_iteration,omitempty"`
	SuggestedEstimate  *float64   `json:"suggested_estimate,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// ChangeRequestCreate is the payload for a new change request.
type ChangeRequestCreate struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Impact             string   `json:"impact,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	RequestType        string   `json:"request_type,omitempty"`
	SuggestedEpic      string   `json:"suggested_epic,omitempty"`
	SuggestedIteration string   `json:"suggested_iteration,omitempty"`
	SuggestedEstimate  *float64 `json:"suggested_estimate,omitempty"`
}

// ChangeRequestApprove is the approval payload. CreateIssue and
// AddToProject default to true on the server.
type ChangeRequestApprove struct {
	ReviewNotes  string   `json:"review_notes,omitempty"`
	CreateIssue  *bool    `json:"create_issue,omitempty"`
	AddToProject *bool    `json:"add_to_project,omitempty"`
	EpicOptionID string   `json:"epic_option_id,omitempty"`
	IterationID  string   `json:"iteration_id,omitempty"`
	Estimate     *float64 `json:"estimate,omitempty"`
}

// ChangeRequestStats is the /api/requests/stats/summary response.
type ChangeRequestStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Converted int `json:"converted"`
}

// LoginRequest is the credential payload for /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for /api/auth/register. InviteToken
// is set when registering from a project invite; Role is honored only
// for admin-initiated registrations.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	InviteToken string `json:"invite_token,omitempty"`
}
