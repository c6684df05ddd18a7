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
	epicColor       string
	epicDescription string
	epicNewName     string
)

var epicsCmd = &cobra.Command{
	Use:   "epics",
	Short: "Manage the project's epics",
	Long:  "List and manage epic definitions. Each epic is backed by a GitHub label on the server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return epicsListRun(cmd.Context())
	},
}

var epicsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List epics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return epicsListRun(cmd.Context())
	},
}

var epicsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an epic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return epicsCreateRun(cmd.Context(), args[0])
	},
}

var epicsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an epic's name, color, or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return epicsUpdateRun(cmd.Context(), args[0])
	},
}

var epicsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show per-epic progress",
	Long:  "Show per-epic item counts, completion, and story-point estimates. Items without an epic bucket under \"Sem épico\".",
	RunE: func(cmd *cobra.Command, args []string) error {
		return epicsDashboardRun(cmd.Context())
	},
}

var epicsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an epic",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return epicsDeleteRun(cmd.Context(), args[0])
	},
}

func init() {
	epicsCreateCmd.Flags().StringVar(&epicColor, "color", "", "Label color (hex, without #)")
	epicsCreateCmd.Flags().StringVar(&epicDescription, "description", "", "Epic description")

	epicsUpdateCmd.Flags().StringVar(&epicNewName, "name", "", "New epic name")
	epicsUpdateCmd.Flags().StringVar(&epicColor, "color", "", "Label color (hex, without #)")
	epicsUpdateCmd.Flags().StringVar(&epicDescription, "description", "", "Epic description")

	epicsCmd.AddCommand(epicsListCmd)
	epicsCmd.AddCommand(epicsCreateCmd)
	epicsCmd.AddCommand(epicsUpdateCmd)
	epicsCmd.AddCommand(epicsDashboardCmd)
	epicsCmd.AddCommand(epicsDeleteCmd)
	rootCmd.AddCommand(epicsCmd)
}

func epicsListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/epics")
	if err != nil {
		return err
	}

	options, err := a.client.EpicOptions(ctx)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		ui.Info("No epics defined. Create one with 'tactyo epics create <name>'.")
		return nil
	}

	table := ui.Table([]string{"ID", "NAME", "COLOR", "DESCRIPTION"})
	for _, opt := range options {
		table.Append([]string{
			strconv.Itoa(opt.ID),
			opt.OptionName,
			opt.Color,
			opt.Description,
		})
	}
	table.Render()
	return nil
}

func epicsCreateRun(ctx context.Context, name string) error {
	a, err := requireAccess(ctx, "/epics")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleOwner, api.RoleAdmin); err != nil {
		return err
	}

	option, err := a.client.CreateEpicOption(ctx, api.EpicOptionCreate{
		OptionName:  name,
		Color:       epicColor,
		Description: epicDescription,
	})
	if err != nil {
		return err
	}
	ui.Success("Created epic %s (id %d)", option.OptionName, option.ID)
	return nil
}

func epicsUpdateRun(ctx context.Context, id string) error {
	if epicNewName == "" && epicColor == "" && epicDescription == "" {
		return fmt.Errorf("nothing to change: pass --name, --color, or --description")
	}

	a, err := requireAccess(ctx, "/epics")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleOwner, api.RoleAdmin); err != nil {
		return err
	}

	update := api.EpicOptionUpdate{}
	if epicNewName != "" {
		update.OptionName = &epicNewName
	}
	if epicColor != "" {
		update.Color = &epicColor
	}
	if epicDescription != "" {
		update.Description = &epicDescription
	}

	option, err := a.client.UpdateEpicOption(ctx, id, update)
	if err != nil {
		return err
	}
	ui.Success("Updated epic %s", option.OptionName)
	return nil
}

func epicsDashboardRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/epics")
	if err != nil {
		return err
	}

	dash, err := a.client.EpicDashboard(ctx)
	if err != nil {
		return err
	}
	if len(dash.Summaries) == 0 {
		ui.Info("No items yet.")
		return nil
	}

	table := ui.Table([]string{"EPIC", "ITEMS", "DONE", "POINTS", "POINTS DONE"})
	for _, s := range dash.Summaries {
		done := strconv.Itoa(s.CompletedCount)
		if s.ItemCount > 0 && s.CompletedCount == s.ItemCount {
			done = output.Green(done)
		}
		table.Append([]string{
			s.Name,
			strconv.Itoa(s.ItemCount),
			done,
			strconv.FormatFloat(s.TotalEstimate, 'f', -1, 64),
			strconv.FormatFloat(s.CompletedEstimate, 'f', -1, 64),
		})
	}
	table.Render()
	return nil
}

func epicsDeleteRun(ctx context.Context, id string) error {
	a, err := requireAccess(ctx, "/epics")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleOwner, api.RoleAdmin); err != nil {
		return err
	}

	if err := a.client.DeleteEpicOption(ctx, id); err != nil {
		return err
	}
	ui.Success("Deleted epic %s", id)
	return nil
}
