package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/log"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "config [app...]",
		Short:             "Push config vars from the apps file",
		GroupID:           GroupApps,
		ValidArgsFunction: completeApps,
		Long: `Set the config vars listed under each selected app's "config" key
with a single "heroku config:add" call per app.

Vars that exist on Heroku but not in the apps file are left alone.`,
		Example: `  san config production
  san config all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := newClient(ctx)
			return forEachApp(ctx, args, func(ctx context.Context, env apps.Environment) error {
				if len(env.Config) == 0 {
					log.FromContext(ctx).Printf("No config vars for %s\n", env.Name)
					return nil
				}
				return client.PushConfig(ctx, env.App, env.Config)
			})
		},
	}

	return cmd
}
