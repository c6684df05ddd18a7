package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/guard"
	"github.com/tactyo/tactyo/internal/output"
	"github.com/tactyo/tactyo/internal/project"
	"github.com/tactyo/tactyo/internal/session"
	"github.com/tactyo/tactyo/internal/state"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui         *output.UI
	stateStore state.Store
	apiClient  *api.Client

	verbose bool

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tactyo",
	Short: "Tactyo - GitHub Projects from the terminal",
	Long: `tactyo is the command-line client for a Tactyo server.
It browses and manages GitHub Projects v2 data the server syncs:
roadmap boards, sprints, epics, backlog, hierarchy, team members,
and change requests.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	defer closeState()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeState()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/tactyo/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "Tactyo API base URL (overrides config)")
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "tactyo")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TACTYO")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "tactyo")

	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("state_dir", defaultConfigDir)
	viper.SetDefault("db_path", filepath.Join(defaultConfigDir, "tactyo.db"))

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose

	// State store and API client are opened lazily so config/version
	// commands run without touching the database.
}

// getState returns the shared state store, opening it on first call.
func getState() (state.Store, error) {
	if stateStore != nil {
		return stateStore, nil
	}

	dbPath := viper.GetString("db_path")
	s, err := state.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	if err := s.Migrate(rootCmd.Context()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate state store: %w", err)
	}

	stateStore = s
	return stateStore, nil
}

func closeState() {
	if stateStore != nil {
		_ = stateStore.Close()
		stateStore = nil
	}
}

// getClient returns the shared API client, building it on first call.
func getClient() (*api.Client, error) {
	if apiClient != nil {
		return apiClient, nil
	}

	st, err := getState()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	apiClient = api.NewClient(viper.GetString("api.base_url"), st, log)
	return apiClient, nil
}

// errNotLoggedIn and friends translate guard redirects into actionable
// CLI errors.
var (
	errNotLoggedIn  = errors.New("not logged in: run 'tactyo login'")
	errNeedsSetup   = errors.New("account setup pending: finish onboarding in the web app")
	errNoProject    = errors.New("no active project: run 'tactyo project select <id>'")
	errInsufficient = errors.New("your role does not allow this operation")
)

// access bundles everything a guarded command needs.
type access struct {
	client   *api.Client
	sessions *session.Manager
	projects *project.Manager
}

// requireAccess refreshes session and project state and evaluates the
// route guard for the given path. Exactly one redirect (or allow)
// fires, mirroring the web client's navigation gate.
func requireAccess(ctx context.Context, path string) (*access, error) {
	client, err := getClient()
	if err != nil {
		return nil, err
	}
	st, err := getState()
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(client)
	sessions.Refresh(ctx)

	projects, err := project.NewManager(ctx, client, st)
	if err != nil {
		return nil, err
	}
	projects.Refresh(ctx)

	decision := guard.Decide(sessions.Snapshot(), projects.Snapshot(), path)
	switch decision.Outcome {
	case guard.OutcomeRedirectLogin:
		return nil, errNotLoggedIn
	case guard.OutcomeRedirectAccountSetup:
		return nil, errNeedsSetup
	case guard.OutcomeRedirectProjectSelection:
		return nil, errNoProject
	}

	return &access{client: client, sessions: sessions, projects: projects}, nil
}

// requireRole pre-checks a server-enforced role restriction so the
// user gets a clear message before the request is even sent.
func (a *access) requireRole(roles ...string) error {
	if !a.sessions.HasRole(roles...) {
		return errInsufficient
	}
	return nil
}

// activeProjectID returns the selected project id as an int.
func (a *access) activeProjectID() (int, error) {
	active := a.projects.Snapshot().Active()
	if active == nil {
		return 0, errNoProject
	}
	return active.ID, nil
}

// formatID renders an int id the way the state store keeps it.
func formatID(id int) string {
	return strconv.Itoa(id)
}
