package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/config"
	"github.com/herokusan/san/internal/heroku"
)

func newDeployCmd() *cobra.Command {
	var (
		flags       pushFlags
		maintenance bool
	)

	cmd := &cobra.Command{
		Use:               "deploy [app...]",
		Short:             "Push, migrate and restart",
		GroupID:           GroupDeploy,
		ValidArgsFunction: completeApps,
		Long: `Deploy each selected app: push the code, run the migrations and
restart.

With --maintenance the app is in maintenance mode while this happens,
and is taken out of it again even when the deploy fails.`,
		Example: `  san deploy staging
  san deploy production --maintenance
  san deploy all --ref release`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			ref, force := flags.resolve(cmd, cfg)

			opts := heroku.DeployOptions{
				Host:        cfg.GitHost,
				Ref:         ref,
				Force:       force,
				Maintenance: cfg.Deploy.Maintenance,
			}
			if cmd.Flags().Changed("maintenance") {
				opts.Maintenance = maintenance
			}

			client := newClient(ctx)
			return forEachApp(ctx, args, func(ctx context.Context, env apps.Environment) error {
				return client.Deploy(ctx, env, opts)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&maintenance, "maintenance", "m", false, "Wrap the deploy in maintenance mode")

	return cmd
}
