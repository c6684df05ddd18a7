package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/guard"
	"github.com/tactyo/tactyo/internal/output"
)

var (
	teamRole string
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage project members and invites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return teamListRun(cmd.Context())
	},
}

var teamListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List project members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return teamListRun(cmd.Context())
	},
}

var teamAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Add an existing user to the project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return teamAddRun(cmd.Context(), args[0])
	},
}

var teamRoleCmd = &cobra.Command{
	Use:   "role <member-id>",
	Short: "Change a member's role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return teamRoleRun(cmd.Context(), args[0])
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:     "remove <member-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a member from the project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return teamRemoveRun(cmd.Context(), args[0])
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the account's users",
	Long:  "List every user of the account (admin/owner only). The ids here feed 'tactyo team add'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return usersListRun(cmd.Context())
	},
}

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage project invites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return inviteListRun(cmd.Context())
	},
}

var inviteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List invites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return inviteListRun(cmd.Context())
	},
}

var inviteSendCmd = &cobra.Command{
	Use:   "send <email>",
	Short: "Invite an email address to the project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inviteSendRun(cmd.Context(), args[0])
	},
}

var inviteCancelCmd = &cobra.Command{
	Use:   "cancel <invite-id>",
	Short: "Cancel a pending invite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inviteCancelRun(cmd.Context(), args[0])
	},
}

func init() {
	teamAddCmd.Flags().StringVar(&teamRole, "role", api.RoleViewer, "Member role (viewer|editor|pm|admin)")
	teamRoleCmd.Flags().StringVar(&teamRole, "role", "", "New role (viewer|editor|pm|admin)")
	_ = teamRoleCmd.MarkFlagRequired("role")
	inviteSendCmd.Flags().StringVar(&teamRole, "role", api.RoleViewer, "Role the invitee will get (viewer|editor|pm|admin)")

	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamRoleCmd)
	teamCmd.AddCommand(teamRemoveCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(usersCmd)

	inviteCmd.AddCommand(inviteListCmd)
	inviteCmd.AddCommand(inviteSendCmd)
	inviteCmd.AddCommand(inviteCancelCmd)
	rootCmd.AddCommand(inviteCmd)
}

func formatCreatedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

func teamListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}

	members, err := a.client.Members(ctx, projectID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		ui.Info("No members.")
		return nil
	}

	table := ui.Table([]string{"ID", "NAME", "EMAIL", "ROLE", "SINCE"})
	for _, m := range members {
		table.Append([]string{
			strconv.Itoa(m.ID),
			m.UserName,
			m.UserEmail,
			output.RoleColor(m.Role),
			formatCreatedAt(m.CreatedAt),
		})
	}
	table.Render()
	return nil
}

func teamAddRun(ctx context.Context, userID string) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}

	member, err := a.client.AddMember(ctx, projectID, userID, teamRole)
	if err != nil {
		return err
	}
	ui.Success("Added %s as %s", member.UserEmail, member.Role)
	return nil
}

func teamRoleRun(ctx context.Context, memberID string) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(memberID)
	if err != nil {
		return err
	}

	member, err := a.client.UpdateMemberRole(ctx, projectID, id, teamRole)
	if err != nil {
		return err
	}
	ui.Success("%s is now %s", member.UserEmail, member.Role)
	return nil
}

func teamRemoveRun(ctx context.Context, memberID string) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(memberID)
	if err != nil {
		return err
	}

	if err := a.client.RemoveMember(ctx, projectID, id); err != nil {
		return err
	}
	ui.Success("Removed member %s", memberID)
	return nil
}

func usersListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, guard.PathSettings)
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}

	users, err := a.client.Users(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		ui.Info("No users.")
		return nil
	}

	table := ui.Table([]string{"ID", "NAME", "EMAIL", "ROLE"})
	for _, u := range users {
		table.Append([]string{
			u.ID,
			u.Name,
			u.Email,
			output.RoleColor(u.Role),
		})
	}
	table.Render()
	return nil
}

func inviteListRun(ctx context.Context) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}

	invites, err := a.client.Invites(ctx, projectID)
	if err != nil {
		return err
	}
	if len(invites) == 0 {
		ui.Info("No invites.")
		return nil
	}

	table := ui.Table([]string{"ID", "EMAIL", "ROLE", "STATUS", "INVITED BY", "SENT"})
	for _, inv := range invites {
		table.Append([]string{
			strconv.Itoa(inv.ID),
			inv.InvitedEmail,
			output.RoleColor(inv.Role),
			inv.Status,
			inv.InvitedByEmail,
			formatCreatedAt(inv.CreatedAt),
		})
	}
	table.Render()
	return nil
}

func inviteSendRun(ctx context.Context, email string) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}

	invite, err := a.client.CreateInvite(ctx, projectID, email, teamRole)
	if err != nil {
		return err
	}
	ui.Success("Invited %s as %s", invite.InvitedEmail, invite.Role)
	return nil
}

func inviteCancelRun(ctx context.Context, inviteID string) error {
	a, err := requireAccess(ctx, "/team")
	if err != nil {
		return err
	}
	if err := a.requireRole(api.RoleAdmin, api.RoleOwner); err != nil {
		return err
	}
	projectID, err := a.activeProjectID()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(inviteID)
	if err != nil {
		return err
	}

	if err := a.client.CancelInvite(ctx, projectID, id); err != nil {
		return err
	}
	ui.Success("Cancelled invite %s", inviteID)
	return nil
}
