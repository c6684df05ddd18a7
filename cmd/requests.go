package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/output"
)

var (
	requestsStatusFilter string

	requestCreatePriority  string
	requestCreateType      string
	requestCreateDesc      string
	requestCreateImpact    string
	requestCreateEpic      string
	requestCreateIteration string
	requestCreateEstimate  float64

	requestApproveNotes     string
	requestApproveNoIssue   bool
	requestApproveEpic      string
	requestApproveIteration string
	requestApproveEstimate  float64

	requestRejectNotes string
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Manage change requests",
	Long: `Manage change requests: proposals anyone on the project can file.
Approving one (pm/admin/owner) can create a GitHub issue from it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsListRun(cmd.Context())
	},
}

var requestsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List change requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsListRun(cmd.Context())
	},
}

var requestsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a change request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsShowRun(cmd.Context(), args[0])
	},
}

var requestsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "File a change request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsCreateRun(cmd.Context(), args[0])
	},
}

var requestsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending change request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsApproveRun(cmd.Context(), args[0])
	},
}

var requestsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending change request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsRejectRun(cmd.Context(), args[0])
	},
}

var requestsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show change request counts by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestsStatsRun(cmd.Context())
	},
}

func init() {
	requestsListCmd.Flags().StringVar(&requestsStatusFilter, "status", "", "Filter by status (pending|approved|rejected|converted)")

	requestsCreateCmd.Flags().StringVar(&requestCreateDesc, "description", "", "What should change and why")
	requestsCreateCmd.Flags().StringVar(&requestCreateImpact, "impact", "", "Expected impact")
	requestsCreateCmd.Flags().StringVar(&requestCreatePriority, "priority", "medium", "Priority (low|medium|high|urgent)")
	requestsCreateCmd.Flags().StringVar(&requestCreateType, "type", "", "Request type (feature|bug|improvement)")
	requestsCreateCmd.Flags().StringVar(&requestCreateEpic, "epic", "", "Suggested epic")
	requestsCreateCmd.Flags().StringVar(&requestCreateIteration, "iteration", "", "Suggested sprint")
	requestsCreateCmd.Flags().Float64Var(&requestCreateEstimate, "estimate", 0, "Suggested estimate in points")

	requestsApproveCmd.Flags().StringVar(&requestApproveNotes, "notes", "", "Review notes")
	requestsApproveCmd.Flags().BoolVar(&requestApproveNoIssue, "no-issue", false, "Approve without creating a GitHub issue")
	requestsApproveCmd.Flags().StringVar(&requestApproveEpic, "epic-option", "", "Epic option id for the created issue")
	requestsApproveCmd.Flags().StringVar(&requestApproveIteration, "iteration-id", "", "Iteration id for the created issue")
	requestsApproveCmd.Flags().Float64Var(&requestApproveEstimate, "estimate", 0, "Estimate in points for the created issue")

	requestsRejectCmd.Flags().StringVar(&requestRejectNotes, "notes", "", "Review notes (required)")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsShowCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsApproveCmd)
	requestsCmd.AddCommand(requestsRejectCmd)
	requestsCmd.AddCommand(requestsStatsCmd)
	rootCmd.AddCommand(requestsCmd)
}

func requestsListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/requests")
	if err != nil {
		return err
	}

	requests, err := a.client.Requests(ctx, requestsStatusFilter)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		ui.Info("No change requests.")
		return nil
	}

	table := ui.Table([]string{"ID", "TITLE", "PRIORITY", "STATUS", "CREATOR", "ISSUE"})
	for _, r := range requests {
		issue := ""
		if r.GitHubIssueNumber != nil {
			issue = "#" + strconv.Itoa(*r.GitHubIssueNumber)
		}
		table.Append([]string{
			r.ID,
			r.Title,
			output.PriorityColor(r.Priority),
			output.RequestStatusColor(r.Status),
			r.CreatorName,
			issue,
		})
	}
	table.Render()
	return nil
}

func requestsShowRun(ctx context.Context, id string) error {
	a, err := requireAccess(ctx, "/requests")
	if err != nil {
		return err
	}

	r, err := a.client.Request(ctx, id)
	if err != nil {
		return err
	}

	ui.Info("%s [%s]", r.Title, output.RequestStatusColor(r.Status))
	fmt.Fprintf(ui.Out, "  id:        %s\n", r.ID)
	fmt.Fprintf(ui.Out, "  priority:  %s\n", output.PriorityColor(r.Priority))
	if r.RequestType != "" {
		fmt.Fprintf(ui.Out, "  type:      %s\n", r.RequestType)
	}
	if r.Description != "" {
		fmt.Fprintf(ui.Out, "  details:   %s\n", r.Description)
	}
	if r.Impact != "" {
		fmt.Fprintf(ui.Out, "  impact:    %s\n", r.Impact)
	}
	if r.CreatorName != "" {
		fmt.Fprintf(ui.Out, "  creator:   %s\n", r.CreatorName)
	}
	if r.ReviewerName != "" {
		reviewed := ""
		if r.ReviewedAt != nil {
			reviewed = " on " + r.ReviewedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(ui.Out, "  reviewer:  %s%s\n", r.ReviewerName, reviewed)
	}
	if r.ReviewNotes != "" {
		fmt.Fprintf(ui.Out, "  notes:     %s\n", r.ReviewNotes)
	}
	if r.GitHubIssueNumber != nil {
		fmt.Fprintf(ui.Out, "  issue:     #%d %s\n", *r.GitHubIssueNumber, r.GitHubIssueURL)
	}
	if r.SuggestedEpic != "" {
		fmt.Fprintf(ui.Out, "  epic:      %s\n", r.SuggestedEpic)
	}
	if r.SuggestedIteration != "" {
		fmt.Fprintf(ui.Out, "  sprint:    %s\n", r.SuggestedIteration)
	}
	if r.SuggestedEstimate != nil {
		fmt.Fprintf(ui.Out, "  estimate:  %s\n", formatEstimate(r.SuggestedEstimate))
	}
	return nil
}

func requestsCreateRun(ctx context.Context, title string) error {
	a, err := requireAccess(ctx, "/requests")
	if err != nil {
		return err
	}

	create := api.ChangeRequestCreate{
		Title:              title,
		Description:        requestCreateDesc,
		Impact:             requestCreateImpact,
		Priority:           requestCreatePriority,
		RequestType:        requestCreateType,
		SuggestedEpic:      requestCreateEpic,
		SuggestedIteration: requestCreateIteration,
	}
	if requestCreateEstimate > 0 {
		create.SuggestedEstimate = &requestCreateEstimate
	}

	r, err := a.client.CreateRequest(ctx, create)
	if err != nil {
		return err
	}
	ui.Success("Filed request %s (%s)", r.ID, r.Title)
	return nil
}

func requestsApproveRun(ctx context.Context, id string) error {
	a, err := requireAccess(ctx, "/requests")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RolePM, api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}

	approve := api.ChangeRequestApprove{
		ReviewNotes:  requestApproveNotes,
		EpicOptionID: requestApproveEpic,
		IterationID:  requestApproveIteration,
	}
	if requestApproveNoIssue {
		f := false
		approve.CreateIssue = &f
	}
	if requestApproveEstimate > 0 {
		approve.Estimate = &requestApproveEstimate
	}

	r, err := a.client.ApproveRequest(ctx, id, approve)
	if err != nil {
		return err
	}

	if r.Status == api.RequestStatusConverted && r.GitHubIssueNumber != nil {
		ui.Success("Approved %s and created issue #%d", r.Title, *r.GitHubIssueNumber)
	} else {
		ui.Success("Approved %s", r.Title)
	}
	return nil
}

func requestsRejectRun(ctx context.Context, id string) error {
	if requestRejectNotes == "" {
		return fmt.Errorf("rejection requires --notes explaining the decision")
	}

	a, err := requireAccess(ctx, "/requests")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RolePM, api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}

	r, err := a.client.RejectRequest(ctx, id, requestRejectNotes)
	if err != nil {
		return err
	}
	ui.Success("Rejected %s", r.Title)
	return nil
}

func requestsStatsRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/requests")
	if err != nil {
		return err
	}

	stats, err := a.client.RequestStats(ctx)
	if err != nil {
		return err
	}

	ui.Info("%d change requests", stats.Total)
	fmt.Fprintf(ui.Out, "  %s %d\n", output.RequestStatusColor(api.RequestStatusPending)+":", stats.Pending)
	fmt.Fprintf(ui.Out, "  %s %d\n", output.RequestStatusColor(api.RequestStatusApproved)+":", stats.Approved)
	fmt.Fprintf(ui.Out, "  %s %d\n", output.RequestStatusColor(api.RequestStatusRejected)+":", stats.Rejected)
	fmt.Fprintf(ui.Out, "  %s %d\n", output.RequestStatusColor(api.RequestStatusConverted)+":", stats.Converted)
	return nil
}
