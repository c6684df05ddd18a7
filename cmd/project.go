package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/guard"
	"github.com/tactyo/tactyo/internal/output"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the active project selection",
	Long:  "List accessible projects and choose the one project-scoped commands operate on.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectListRun(cmd.Context())
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List accessible projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectListRun(cmd.Context())
	},
}

var projectSelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Select the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectSelectRun(cmd.Context(), args[0])
	},
}

var projectCurrentCmd = &cobra.Command{
	Use:     "current",
	Aliases: []string{"show"},
	Short:   "Show the active project",
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectCurrentRun(cmd.Context())
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectSelectCmd)
	projectCmd.AddCommand(projectCurrentCmd)
	rootCmd.AddCommand(projectCmd)
}

func formatSyncTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func projectListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, guard.PathProjectSelection)
	if err != nil {
		return err
	}

	snap := a.projects.Snapshot()
	if snap.Err != "" {
		return fmt.Errorf("load projects: %s", snap.Err)
	}
	if len(snap.Projects) == 0 {
		ui.Info("No projects available. Bind one with 'tactyo settings project'.")
		return nil
	}

	table := ui.Table([]string{"", "ID", "OWNER", "#", "NAME", "SYNCED"})
	for _, p := range snap.Projects {
		marker := ""
		if strconv.Itoa(p.ID) == snap.ActiveID {
			marker = output.Green("*")
		}
		table.Append([]string{
			marker,
			strconv.Itoa(p.ID),
			p.OwnerLogin,
			strconv.Itoa(p.ProjectNumber),
			p.Name,
			formatSyncTime(p.LastSyncedAt),
		})
	}
	table.Render()
	return nil
}

func projectSelectRun(ctx context.Context, id string) error {
	a, err := requireAccess(ctx, guard.PathProjectSelection)
	if err != nil {
		return err
	}

	snap := a.projects.Snapshot()
	var selected *api.Project
	for i := range snap.Projects {
		if strconv.Itoa(snap.Projects[i].ID) == id {
			selected = &snap.Projects[i]
			break
		}
	}
	if selected == nil {
		return fmt.Errorf("project %s not found; run 'tactyo project list'", id)
	}

	if err := a.projects.SetActiveProject(ctx, id); err != nil {
		return err
	}
	ui.Success("Active project: %s/#%d (%s)", selected.OwnerLogin, selected.ProjectNumber, selected.Name)
	return nil
}

func projectCurrentRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/")
	if err != nil {
		return err
	}

	project, err := a.client.CurrentProject(ctx)
	if err != nil {
		return err
	}

	ui.Info("%s/#%d %s", project.OwnerLogin, project.ProjectNumber, project.Name)
	fmt.Fprintf(ui.Out, "  id:      %d\n", project.ID)
	fmt.Fprintf(ui.Out, "  synced:  %s\n", formatSyncTime(project.LastSyncedAt))
	if len(project.StatusColumns) > 0 {
		fmt.Fprintf(ui.Out, "  columns: %v\n", project.StatusColumns)
	}
	return nil
}
