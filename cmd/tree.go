package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/hierarchy"
	"github.com/tactyo/tactyo/internal/output"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the epic hierarchy",
	Long:  "Show the epic → story → task tree with per-type totals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return treeRun(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func treeRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/tree")
	if err != nil {
		return err
	}

	h, err := a.client.Hierarchy(ctx)
	if err != nil {
		return err
	}

	flat := hierarchy.Flatten(h)
	if len(flat) == 0 {
		ui.Info("The hierarchy is empty.")
		return nil
	}

	lastEpic := ""
	printedOrphanHeader := false
	for _, fi := range flat {
		if fi.Orphan && !printedOrphanHeader {
			fmt.Fprintf(ui.Out, "%s\n", output.Yellow("(sem épico)"))
			printedOrphanHeader = true
		} else if !fi.Orphan && fi.Depth == 0 && fi.EpicName != lastEpic {
			fmt.Fprintf(ui.Out, "%s\n", output.Cyan(fi.EpicName))
			lastEpic = fi.EpicName
		}

		indent := strings.Repeat("  ", fi.Depth+1)
		line := indent + fi.Item.Title
		if fi.Item.ItemType != "" {
			line += "  [" + fi.Item.ItemType + "]"
		}
		if fi.Item.Status != "" {
			line += "  " + output.StatusColor(fi.Item.Status)
		}
		fmt.Fprintln(ui.Out, line)
	}

	counts := hierarchy.CountByType(flat)
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Fprintln(ui.Out)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, counts[t]))
	}
	ui.Info("%d items (%s)", len(flat), strings.Join(parts, ", "))
	return nil
}
