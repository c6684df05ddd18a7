package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/guard"
)

var (
	settingsColumns []string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Account and project settings",
}

var settingsTokenCmd = &cobra.Command{
	Use:   "token [token]",
	Short: "Store or check the GitHub token",
	Long: `Store the account's GitHub token on the server, or report whether
one is configured when called without an argument. The token itself is
never echoed back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return settingsTokenSetRun(cmd.Context(), args[0])
		}
		return settingsTokenShowRun(cmd.Context())
	},
}

var settingsProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List GitHub projects available for binding",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsProjectsRun(cmd.Context())
	},
}

var settingsBindCmd = &cobra.Command{
	Use:   "bind <owner> <number>",
	Short: "Bind a GitHub Project to the account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsBindRun(cmd.Context(), args[0], args[1])
	},
}

var settingsColumnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show or replace the board's status columns",
	Long: `Show the configured board columns, or replace them with --set.
The server drops "done" variants from the list and always appends a
final Done column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsColumnsRun(cmd.Context())
	},
}

var settingsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-sync the active project from GitHub",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsSyncRun(cmd.Context())
	},
}

func init() {
	settingsColumnsCmd.Flags().StringSliceVar(&settingsColumns, "set", nil, "Replace the columns (comma separated)")

	settingsCmd.AddCommand(settingsTokenCmd)
	settingsCmd.AddCommand(settingsProjectsCmd)
	settingsCmd.AddCommand(settingsBindCmd)
	settingsCmd.AddCommand(settingsColumnsCmd)
	settingsCmd.AddCommand(settingsSyncCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsTokenSetRun(ctx context.Context, token string) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}

	if err := a.client.SetGitHubToken(ctx, strings.TrimSpace(token)); err != nil {
		return err
	}
	ui.Success("GitHub token stored")
	return nil
}

func settingsTokenShowRun(ctx context.Context) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}

	configured, err := a.client.HasGitHubToken(ctx)
	if err != nil {
		return err
	}
	if configured {
		ui.Info("A GitHub token is configured.")
	} else {
		ui.Info("No GitHub token configured. Set one with 'tactyo settings token <token>'.")
	}
	return nil
}

func settingsProjectsRun(ctx context.Context) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}

	projects, err := a.client.AvailableGitHubProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		ui.Info("No GitHub projects visible to the configured token.")
		return nil
	}

	table := ui.Table([]string{"#", "TITLE", "UPDATED"})
	for _, p := range projects {
		table.Append([]string{
			strconv.Itoa(p.Number),
			p.Title,
			formatSyncTime(p.UpdatedAt),
		})
	}
	table.Render()
	return nil
}

func settingsBindRun(ctx context.Context, owner, number string) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return err
	}

	project, err := a.client.BindGitHubProject(ctx, owner, n)
	if err != nil {
		return err
	}

	if err := a.projects.SetActiveProject(ctx, formatID(project.ID)); err != nil {
		return err
	}
	ui.Success("Bound %s/#%d (%s) and made it the active project", project.OwnerLogin, project.ProjectNumber, project.Name)
	return nil
}

func settingsColumnsRun(ctx context.Context) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}

	if len(settingsColumns) == 0 {
		project, err := a.client.CurrentProject(ctx)
		if err != nil {
			return err
		}
		if len(project.StatusColumns) == 0 {
			ui.Info("No columns configured; the board shows observed statuses only.")
			return nil
		}
		ui.Info("Columns: %s", strings.Join(project.StatusColumns, ", "))
		return nil
	}

	if err := a.requireRole(api.RoleOwner, api.RoleAdmin); err != nil {
		return err
	}

	columns, err := a.client.SetStatusColumns(ctx, settingsColumns)
	if err != nil {
		return err
	}
	ui.Success("Columns: %s", strings.Join(columns, ", "))
	return nil
}

func settingsSyncRun(ctx context.Context) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}

	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}

	ui.Info("Syncing project %d from GitHub...", projectID)
	if err := a.client.Sync(ctx, projectID); err != nil {
		return err
	}
	ui.Success("Sync complete")
	return nil
}
