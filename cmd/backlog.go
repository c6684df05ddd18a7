package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/classify"
	"github.com/tactyo/tactyo/internal/output"
)

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "List backlog items",
	Long:  "List items with no sprint assigned and a status prior to active work.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return backlogRun(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(backlogCmd)
}

func backlogRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/backlog")
	if err != nil {
		return err
	}

	items, err := a.client.Items(ctx, api.ItemFilter{})
	if err != nil {
		return err
	}

	var backlog []api.ProjectItem
	for _, item := range items {
		if item.Iteration == "" && !output.StatusIsDone(item.Status) {
			backlog = append(backlog, item)
		}
	}

	if len(backlog) == 0 {
		ui.Info("Backlog is empty.")
		return nil
	}

	table := ui.Table([]string{"ID", "TYPE", "TITLE", "STATUS", "EPIC", "EST"})
	for _, item := range backlog {
		c := classify.Item(item)
		table.Append([]string{
			strconv.Itoa(item.ID),
			c.TypeLabel,
			item.Title,
			output.StatusColor(item.Status),
			c.EpicName,
			formatEstimate(item.Estimate),
		})
	}
	table.Render()
	return nil
}
