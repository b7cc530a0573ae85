package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
)

func newLogsCmd() *cobra.Command {
	var tail bool

	cmd := &cobra.Command{
		Use:               "logs [app...]",
		Short:             "Show app logs",
		GroupID:           GroupApps,
		ValidArgsFunction: completeApps,
		Long: `Show recent log lines of each selected app.

With --tail the logs are followed until interrupted, which only makes
sense for a single app.`,
		Example: `  san logs production
  san logs staging --tail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sel, err := loadSelection(ctx, args)
			if err != nil {
				return err
			}
			// Fix the default so its notice is printed once.
			names := sel.Names(ctx)
			sel.Append(names...)
			if tail && len(names) > 1 {
				return fmt.Errorf("--tail needs exactly one app, got %d", len(names))
			}

			client := newClient(ctx)
			return eachApp(ctx, sel, func(ctx context.Context, env apps.Environment) error {
				return client.Logs(ctx, env.App, tail)
			})
		},
	}

	cmd.Flags().BoolVarP(&tail, "tail", "t", false, "Follow the log stream")

	return cmd
}
