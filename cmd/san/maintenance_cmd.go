package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/heroku"
)

func newMaintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "maintenance <on|off> [app...]",
		Short:   "Turn maintenance mode on or off",
		Aliases: []string{"maint"},
		GroupID: GroupApps,
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{heroku.MaintenanceOn, heroku.MaintenanceOff}, cobra.ShellCompDirectiveNoFileComp
			}
			return completeApps(cmd, args, toComplete)
		},
		Long: `Turn heroku maintenance mode on or off for each selected app.

Only "on" and "off" are accepted here; the action is checked before any
app is touched.`,
		Example: `  san maintenance on production
  san maintenance off all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			action := args[0]
			if action != heroku.MaintenanceOn && action != heroku.MaintenanceOff {
				return fmt.Errorf("invalid maintenance action %q (use on or off)", action)
			}

			ctx := cmd.Context()
			client := newClient(ctx)
			return forEachApp(ctx, args[1:], func(ctx context.Context, env apps.Environment) error {
				return client.Maintenance(ctx, env.App, action)
			})
		},
	}

	return cmd
}
