package main

import (
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/config"
	"github.com/herokusan/san/internal/log"
	"github.com/herokusan/san/internal/output"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list [app...]",
		Short:             "List the apps defined in the apps file",
		Aliases:           []string{"ls"},
		GroupID:           GroupApps,
		ValidArgsFunction: completeApps,
		Long: `List every environment of the apps file with its heroku app, git
remote and number of config vars.

Environments that a per-app command would run against with the same
arguments are marked with "*".`,
		Example: `  san list              # All apps, mark the default selection
  san list staging      # Mark staging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			sel, err := loadSelection(ctx, args)
			if err != nil {
				return err
			}
			settings := sel.Settings()
			if settings.Len() == 0 {
				log.FromContext(ctx).Printf("No apps defined in %s (run 'san init' to create it)\n", appsPath(ctx))
				return nil
			}

			selected := sel.Names(ctx)
			rows := make([][]string, 0, settings.Len())
			for _, name := range settings.Names() {
				env, _ := settings.Get(name)
				mark := ""
				if slices.Contains(selected, name) {
					mark = "*"
				}
				rows = append(rows, []string{mark, env.Name, env.App, env.Repo(cfg.GitHost), strconv.Itoa(len(env.Config))})
			}
			out.Table([]string{"", "NAME", "APP", "REPO", "CONFIG"}, rows)
			return nil
		},
	}

	return cmd
}
