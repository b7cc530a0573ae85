package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/config"
	"github.com/herokusan/san/internal/log"
	"github.com/herokusan/san/internal/output"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	interactive bool
	appsFile    string
)

// Command group IDs for organizing help output
const (
	GroupApps   = "apps"
	GroupDeploy = "deploy"
	GroupSetup  = "setup"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "san",
	Short: "Run Heroku operations across the environments of an app",
	Long: `san runs Heroku operations against the environments listed in an
apps file (config/heroku.yml by default).

Every per-app command takes environment names as arguments, or "all".
Without arguments, san picks the only environment when there is one, or
the environment named like the current git branch.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The logger depends on -v/-q, which are only parsed by now.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "san: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Invalid preferences are not fatal; san falls back to defaults.
	cfg, err := config.LoadWithLocal(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.Default()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'san -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&appsFile, "config", "c", "", "Apps file (default from preferences, config/heroku.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress log output except defaulting notices")
	rootCmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "Pick apps interactively when none are selected")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupApps, Title: "App Commands:"},
		&cobra.Group{ID: GroupDeploy, Title: "Deploy Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	// App commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newMaintenanceCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLogsCmd())

	// Deploy commands
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newDeployCmd())

	// Setup commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newRemotesCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
