package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/config"
	"github.com/herokusan/san/internal/git"
	"github.com/herokusan/san/internal/log"
)

func newRemotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remotes [app...]",
		Short:             "Add a git remote per app",
		GroupID:           GroupSetup,
		ValidArgsFunction: completeApps,
		Long: `Add a git remote named after each selected environment, pointing at
the app's heroku repository. Remotes that already exist are left alone.`,
		Example: `  san remotes all
  san remotes staging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			workDir := config.WorkDirFromContext(ctx)
			if err := git.CheckGit(); err != nil {
				return err
			}
			if !git.IsInsideRepo(ctx, workDir) {
				return fmt.Errorf("not a git repository: %s", workDir)
			}

			client := newClient(ctx)
			return forEachApp(ctx, args, func(ctx context.Context, env apps.Environment) error {
				exists, err := git.HasRemote(ctx, workDir, env.Name)
				if err != nil {
					return err
				}
				if exists {
					url, _ := git.RemoteURL(ctx, workDir, env.Name)
					log.FromContext(ctx).Printf("Remote %s already exists (%s)\n", env.Name, url)
					return nil
				}
				return client.AddRemote(ctx, env.Name, env.Repo(cfg.GitHost))
			})
		},
	}

	return cmd
}
