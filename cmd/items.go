package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/classify"
	"github.com/tactyo/tactyo/internal/dates"
	"github.com/tactyo/tactyo/internal/output"
)

var (
	itemsStatus    string
	itemsIteration string
	itemsEpic      string
	itemsSearch    string

	itemEditStart string
	itemEditEnd   string
	itemEditDue   string

	itemShowComments bool
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the active project's items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return itemsListRun(cmd.Context())
	},
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Inspect and edit a single item",
}

var itemShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show item details",
	Long: `Show an item's project fields plus its GitHub content: state,
author, labels, and body. Drafts have no GitHub content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return itemShowRun(cmd.Context(), args[0])
	},
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an item's dates",
	Long: `Edit an item's start, end, or due date (YYYY-MM-DD).

The edit carries the item's last known GitHub timestamp; the server
rejects the write with a conflict when the item changed remotely in
the meantime.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return itemEditRun(cmd.Context(), args[0])
	},
}

func init() {
	itemsCmd.Flags().StringVar(&itemsStatus, "status", "", "Filter by status")
	itemsCmd.Flags().StringVar(&itemsIteration, "iteration", "", "Filter by sprint/iteration")
	itemsCmd.Flags().StringVar(&itemsEpic, "epic", "", "Filter by epic")
	itemsCmd.Flags().StringVar(&itemsSearch, "search", "", "Search in titles")

	itemEditCmd.Flags().StringVar(&itemEditStart, "start", "", "Start date (YYYY-MM-DD)")
	itemEditCmd.Flags().StringVar(&itemEditEnd, "end", "", "End date (YYYY-MM-DD)")
	itemEditCmd.Flags().StringVar(&itemEditDue, "due", "", "Due date (YYYY-MM-DD)")

	itemShowCmd.Flags().BoolVar(&itemShowComments, "comments", false, "Include GitHub comments")

	itemCmd.AddCommand(itemShowCmd)
	itemCmd.AddCommand(itemEditCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(itemCmd)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	day, ok := dates.FormatDateForInput(t.Format(time.RFC3339))
	if !ok {
		return ""
	}
	return day
}

func formatEstimate(estimate *float64) string {
	if estimate == nil {
		return ""
	}
	return strconv.FormatFloat(*estimate, 'f', -1, 64)
}

func itemsListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/items")
	if err != nil {
		return err
	}

	items, err := a.client.Items(ctx, api.ItemFilter{
		Status:    itemsStatus,
		Iteration: itemsIteration,
		Epic:      itemsEpic,
		Search:    itemsSearch,
	})
	if err != nil {
		return err
	}

	if len(items) == 0 {
		ui.Info("No items match.")
		return nil
	}

	table := ui.Table([]string{"ID", "TYPE", "TITLE", "STATUS", "EPIC", "SPRINT", "EST"})
	for _, item := range items {
		c := classify.Item(item)
		table.Append([]string{
			strconv.Itoa(item.ID),
			c.TypeLabel,
			item.Title,
			output.StatusColor(item.Status),
			c.EpicName,
			item.Iteration,
			formatEstimate(item.Estimate),
		})
	}
	table.Render()
	return nil
}

func findItem(items []api.ProjectItem, id string) (*api.ProjectItem, error) {
	for i := range items {
		if strconv.Itoa(items[i].ID) == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("item %s not found in the active project", id)
}

func itemShowRun(ctx context.Context, id string) error {
	a, err := requireAccess(ctx, "/items")
	if err != nil {
		return err
	}

	items, err := a.client.Items(ctx, api.ItemFilter{})
	if err != nil {
		return err
	}
	item, err := findItem(items, id)
	if err != nil {
		return err
	}

	c := classify.Item(*item)
	ui.Info("%s %s", c.TypeLabel, item.Title)
	fmt.Fprintf(ui.Out, "  id:        %d\n", item.ID)
	fmt.Fprintf(ui.Out, "  status:    %s\n", output.StatusColor(item.Status))
	if c.EpicName != "" {
		fmt.Fprintf(ui.Out, "  epic:      %s\n", c.EpicName)
	}
	if item.Iteration != "" {
		fmt.Fprintf(ui.Out, "  sprint:    %s\n", item.Iteration)
	}
	if est := formatEstimate(item.Estimate); est != "" {
		fmt.Fprintf(ui.Out, "  estimate:  %s\n", est)
	}
	if len(item.Assignees) > 0 {
		fmt.Fprintf(ui.Out, "  assignees: %s\n", strings.Join(item.Assignees, ", "))
	}
	for _, row := range []struct {
		label string
		value *time.Time
	}{
		{"start", item.StartDate},
		{"end", item.EndDate},
		{"due", item.DueDate},
	} {
		if day := formatDate(row.value); day != "" {
			fmt.Fprintf(ui.Out, "  %-9s %s\n", row.label+":", day)
		}
	}
	if item.URL != "" {
		fmt.Fprintf(ui.Out, "  url:       %s\n", item.URL)
	}

	// GitHub-side content. Drafts have none; the server answers 400 and
	// the summary above is all there is.
	detail, err := a.client.ItemDetails(ctx, item.ID)
	if err != nil {
		ui.VerboseLog("no GitHub content: %v", err)
		return nil
	}

	state := detail.State
	if detail.Merged != nil && *detail.Merged {
		state = "merged"
	}
	if state != "" {
		fmt.Fprintf(ui.Out, "  state:     %s\n", state)
	}
	if detail.Author != nil && detail.Author.Login != "" {
		fmt.Fprintf(ui.Out, "  author:    %s\n", detail.Author.Login)
	}
	if len(detail.Labels) > 0 {
		names := make([]string, len(detail.Labels))
		for i, label := range detail.Labels {
			names[i] = label.Name
		}
		fmt.Fprintf(ui.Out, "  labels:    %s\n", strings.Join(names, ", "))
	}
	body := strings.TrimSpace(detail.BodyText)
	if body == "" {
		body = strings.TrimSpace(detail.Body)
	}
	if body != "" {
		fmt.Fprintf(ui.Out, "\n%s\n", body)
	}

	if !itemShowComments {
		return nil
	}
	comments, err := a.client.ItemComments(ctx, item.ID)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		ui.Info("No comments.")
		return nil
	}
	for _, cm := range comments {
		when := ""
		if cm.CreatedAt != nil {
			when = " " + cm.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(ui.Out, "\n%s%s\n%s\n", output.Cyan(cm.Author), when, strings.TrimSpace(cm.Body))
	}
	return nil
}

func itemEditRun(ctx context.Context, id string) error {
	if itemEditStart == "" && itemEditEnd == "" && itemEditDue == "" {
		return fmt.Errorf("nothing to change: pass --start, --end, or --due")
	}

	a, err := requireAccess(ctx, "/items")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleOwner, api.RoleAdmin); err != nil {
		return err
	}

	items, err := a.client.Items(ctx, api.ItemFilter{})
	if err != nil {
		return err
	}
	item, err := findItem(items, id)
	if err != nil {
		return err
	}

	update := api.ItemUpdate{}
	for _, field := range []struct {
		input  string
		target **string
	}{
		{itemEditStart, &update.StartDate},
		{itemEditEnd, &update.EndDate},
		{itemEditDue, &update.DueDate},
	} {
		if field.input == "" {
			continue
		}
		iso, err := dates.ConvertDateInputToISO(field.input)
		if err != nil {
			return err
		}
		*field.target = &iso
	}

	if item.RemoteUpdatedAt != nil {
		ts := item.RemoteUpdatedAt.UTC().Format(time.RFC3339)
		update.RemoteUpdatedAt = &ts
	}

	updated, err := a.client.UpdateItem(ctx, item.ID, update)
	if err != nil {
		if api.IsConflict(err) {
			ui.Warning("%v", err)
			return fmt.Errorf("item changed on GitHub; re-run after 'tactyo settings sync'")
		}
		return err
	}

	ui.Success("Updated %s", updated.Title)
	return nil
}
