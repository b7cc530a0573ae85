package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/config"
	"github.com/herokusan/san/internal/output"
)

func newInitCmd() *cobra.Command {
	var (
		prefs bool
		force bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create an example apps file",
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		Long: `Create an example apps file with production, staging and demo
environments. An existing file is never touched.

With --prefs, write the default preferences file
(~/.config/san/config.toml) instead.`,
		Example: `  san init                    # Create config/heroku.yml
  san init -c deploy/apps.yml # Create a different apps file
  san init --prefs            # Create ~/.config/san/config.toml
  san init --prefs --force    # Overwrite existing preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if prefs {
				path, err := config.Init(force)
				if err != nil {
					return err
				}
				out.Printf("Created %s\n", path)
				return nil
			}
			if force {
				return fmt.Errorf("--force only applies to --prefs")
			}

			path := appsPath(ctx)
			created, err := apps.CreateConfig(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if !created {
				out.Printf("%s already exists\n", path)
				return nil
			}
			out.Printf("Created %s, edit it to match your apps\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefs, "prefs", false, "Create the preferences file instead")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing preferences")

	return cmd
}
