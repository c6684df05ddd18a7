package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/board"
	"github.com/tactyo/tactyo/internal/classify"
	"github.com/tactyo/tactyo/internal/output"
)

var roadmapAll bool

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show the roadmap board",
	Long: `Show the project's board: configured status columns plus any
status observed on items, unassigned items first and Done last.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return roadmapRun(cmd.Context())
	},
}

func init() {
	roadmapCmd.Flags().BoolVar(&roadmapAll, "all", false, "List every item per column, not just counts")
	rootCmd.AddCommand(roadmapCmd)
}

func roadmapRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/roadmap")
	if err != nil {
		return err
	}

	project, err := a.client.CurrentProject(ctx)
	if err != nil {
		return err
	}
	items, err := a.client.Items(ctx, api.ItemFilter{})
	if err != nil {
		return err
	}

	observed := make([]string, len(items))
	for i, item := range items {
		observed[i] = item.Status
	}
	columns := board.BuildColumns(project.StatusColumns, observed)

	grouped := map[string][]api.ProjectItem{}
	for _, item := range items {
		key := board.ColumnKeyForStatus(item.Status)
		grouped[key] = append(grouped[key], item)
	}

	for _, col := range columns {
		bucket := grouped[col.Key]
		fmt.Fprintf(ui.Out, "%s (%d)\n", output.Cyan(col.Title), len(bucket))
		if !roadmapAll {
			continue
		}
		for _, item := range bucket {
			c := classify.Item(item)
			line := "  " + strconv.Itoa(item.ID) + "  " + item.Title
			if c.EpicName != "" {
				line += "  [" + c.EpicName + "]"
			}
			fmt.Fprintln(ui.Out, line)
		}
	}
	return nil
}
