package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/output"
	"github.com/tactyo/tactyo/internal/session"
)

var (
	loginEmail    string
	loginPassword string

	registerName        string
	registerRole        string
	registerInviteToken string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Tactyo server",
	Long:  "Authenticate against the configured Tactyo server and persist the session locally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return loginRun()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return logoutRun()
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new user",
	Long: `Register a new user on the Tactyo server.

The first user of an installation becomes its owner. Later
registrations need either --invite-token or an admin session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return registerRun(args[0])
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return whoamiRun()
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Role for admin-initiated registration (viewer, editor, pm, admin)")
	registerCmd.Flags().StringVar(&registerInviteToken, "invite-token", "", "Project invite token")
	registerCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// promptLine reads one line from stdin with a label. Password input is
// not masked; use the flag in scripts.
func promptLine(label string) (string, error) {
	fmt.Fprintf(ui.Out, "%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func loginRun() error {
	client, err := getClient()
	if err != nil {
		return err
	}

	email := loginEmail
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	user, err := client.Login(rootCmd.Context(), email, password)
	if err != nil {
		return err
	}

	ui.Success("Logged in as %s (%s)", user.Email, output.RoleColor(user.Role))
	if user.NeedsAccountSetup {
		ui.Warning("Account setup pending: finish onboarding in the web app")
	}
	return nil
}

func logoutRun() error {
	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.Logout(rootCmd.Context()); err != nil {
		return err
	}
	ui.Success("Logged out")
	return nil
}

func registerRun(email string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	password := loginPassword
	if password == "" {
		if password, err = promptLine("Password"); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	user, err := client.Register(rootCmd.Context(), api.RegisterRequest{
		Email:       email,
		Password:    password,
		Name:        registerName,
		Role:        registerRole,
		InviteToken: registerInviteToken,
	})
	if err != nil {
		return err
	}

	ui.Success("Registered %s (%s)", user.Email, output.RoleColor(user.Role))
	if registerInviteToken == "" && user.Role != api.RoleOwner {
		ui.Info("Check the inbox for a verification email before logging in.")
	}
	return nil
}

func whoamiRun() error {
	client, err := getClient()
	if err != nil {
		return err
	}

	sessions := session.NewManager(client)
	snap := sessions.Refresh(rootCmd.Context())
	if snap.Status != session.StatusAuthenticated {
		return errNotLoggedIn
	}

	user := snap.User
	ui.Info("%s", user.Email)
	fmt.Fprintf(ui.Out, "  id:    %s\n", user.ID)
	fmt.Fprintf(ui.Out, "  role:  %s\n", output.RoleColor(user.Role))
	if user.Name != "" {
		fmt.Fprintf(ui.Out, "  name:  %s\n", user.Name)
	}
	if user.NeedsAccountSetup {
		fmt.Fprintf(ui.Out, "  setup: %s\n", output.Yellow("pending"))
	}
	return nil
}
