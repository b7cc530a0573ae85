package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "migrate [app...]",
		Short:             "Run database migrations and restart",
		GroupID:           GroupApps,
		ValidArgsFunction: completeApps,
		Long: `Run "rake db:migrate" on each selected app, then restart it.

Apps are migrated one after the other. The first failure stops the run
and the restart of that app is skipped.`,
		Example: `  san migrate                  # Default app (single app or current branch)
  san migrate staging demo     # Two apps in order
  san migrate all              # Every app`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := newClient(ctx)
			return forEachApp(ctx, args, func(ctx context.Context, env apps.Environment) error {
				return client.Migrate(ctx, env.App)
			})
		},
	}

	return cmd
}
