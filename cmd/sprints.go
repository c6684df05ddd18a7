package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/output"
)

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "Show the sprint dashboard",
	Long:  "Show per-sprint item counts, completion, and story-point estimates.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sprintsRun(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(sprintsCmd)
}

func sprintsRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/sprints")
	if err != nil {
		return err
	}

	dash, err := a.client.IterationDashboard(ctx)
	if err != nil {
		return err
	}

	if len(dash.Summaries) == 0 {
		ui.Info("No sprints yet.")
		return nil
	}

	table := ui.Table([]string{"SPRINT", "PERIOD", "ITEMS", "DONE", "POINTS", "POINTS DONE"})
	for _, s := range dash.Summaries {
		period := ""
		if s.StartDate != nil && s.EndDate != nil {
			period = fmt.Sprintf("%s → %s", formatDate(s.StartDate), formatDate(s.EndDate))
		}
		done := strconv.Itoa(s.CompletedCount)
		if s.ItemCount > 0 && s.CompletedCount == s.ItemCount {
			done = output.Green(done)
		}
		table.Append([]string{
			s.Name,
			period,
			strconv.Itoa(s.ItemCount),
			done,
			strconv.FormatFloat(s.TotalEstimate, 'f', -1, 64),
			strconv.FormatFloat(s.CompletedEstimate, 'f', -1, 64),
		})
	}
	table.Render()

	for _, s := range dash.Summaries {
		if len(s.StatusBreakdown) == 0 || !ui.Verbose {
			continue
		}
		ui.VerboseLog("%s:", s.Name)
		for _, entry := range s.StatusBreakdown {
			status := entry.Status
			if status == "" {
				status = "Sem etapa"
			}
			ui.VerboseLog("  %s: %d (%.1f pts)", output.StatusColor(status), entry.Count, entry.TotalEstimate)
		}
	}
	return nil
}
