package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/config"
)

// pushFlags are shared by push and deploy. Unset flags fall back to the
// [deploy] preferences.
type pushFlags struct {
	ref   string
	force bool
}

func (f *pushFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ref, "ref", "", "Local ref to push (default from preferences, HEAD)")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Force-push")
}

// resolve returns the ref and force setting to use.
func (f *pushFlags) resolve(cmd *cobra.Command, cfg *config.Config) (string, bool) {
	ref := cfg.Deploy.Ref
	if cmd.Flags().Changed("ref") {
		ref = f.ref
	}
	force := cfg.Deploy.Force
	if cmd.Flags().Changed("force") {
		force = f.force
	}
	return ref, force
}

func newPushCmd() *cobra.Command {
	var flags pushFlags

	cmd := &cobra.Command{
		Use:               "push [app...]",
		Short:             "Push code to the apps",
		GroupID:           GroupDeploy,
		ValidArgsFunction: completeApps,
		Long: `Push a local ref to the master branch of each selected app's git
remote (git@<git_host>:<app>.git).`,
		Example: `  san push staging
  san push production --ref release
  san push demo --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			ref, force := flags.resolve(cmd, cfg)

			client := newClient(ctx)
			return forEachApp(ctx, args, func(ctx context.Context, env apps.Environment) error {
				return client.Push(ctx, env.Repo(cfg.GitHost), ref, force)
			})
		},
	}

	flags.register(cmd)

	return cmd
}
