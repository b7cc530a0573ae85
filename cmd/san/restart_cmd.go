package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
)

func newRestartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "restart [app...]",
		Short:             "Restart app dynos",
		GroupID:           GroupApps,
		ValidArgsFunction: completeApps,
		Example: `  san restart staging
  san restart all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := newClient(ctx)
			return forEachApp(ctx, args, func(ctx context.Context, env apps.Environment) error {
				return client.Restart(ctx, env.App)
			})
		},
	}

	return cmd
}
