package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/herokusan/san/internal/apps"
	runcmd "github.com/herokusan/san/internal/cmd"
	"github.com/herokusan/san/internal/config"
	"github.com/herokusan/san/internal/git"
	"github.com/herokusan/san/internal/heroku"
	"github.com/herokusan/san/internal/log"
	"github.com/herokusan/san/internal/output"
	"github.com/herokusan/san/internal/ui"
)

// appsPath returns the apps file to read: the -c flag when given,
// otherwise the preference resolved against the working directory.
func appsPath(ctx context.Context) string {
	if appsFile != "" {
		return appsFile
	}
	return config.FromContext(ctx).AppsPath(config.WorkDirFromContext(ctx))
}

// loadSelection reads the apps file and selects args. Unknown names are
// ignored, with a suggestion in verbose mode.
func loadSelection(ctx context.Context, args []string) (*apps.Selection, error) {
	l := log.FromContext(ctx)
	path := appsPath(ctx)

	settings, err := apps.Load(path)
	if err != nil {
		return nil, err
	}
	l.Debug("loaded apps", "file", path, "count", settings.Len())

	sel := apps.NewSelection(settings, git.BranchReader(config.WorkDirFromContext(ctx)))
	for _, name := range sel.Append(args...) {
		if suggestion, ok := settings.Suggest(name); ok {
			l.Debug("ignoring unknown app", "name", name, "suggestion", suggestion)
			continue
		}
		l.Debug("ignoring unknown app", "name", name)
	}

	if interactive && len(args) == 0 {
		if err := pickIfEmpty(ctx, sel); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// pickIfEmpty fixes the defaulted selection, or asks the user when
// nothing could be defaulted.
func pickIfEmpty(ctx context.Context, sel *apps.Selection) error {
	names := sel.Names(ctx)
	if len(names) > 0 {
		sel.Append(names...)
		return nil
	}
	if sel.Settings().Len() == 0 || !ui.CanPrompt() {
		return nil
	}
	picked, err := ui.PickApps(sel.All())
	if err != nil {
		return err
	}
	sel.Append(picked...)
	return nil
}

// forEachApp loads the selection for args and runs fn once per selected
// environment, printing a header before each.
func forEachApp(ctx context.Context, args []string, fn func(context.Context, apps.Environment) error) error {
	sel, err := loadSelection(ctx, args)
	if err != nil {
		return err
	}
	return eachApp(ctx, sel, fn)
}

func eachApp(ctx context.Context, sel *apps.Selection, fn func(context.Context, apps.Environment) error) error {
	out := output.FromContext(ctx)
	err := sel.EachApp(ctx, func(env apps.Environment) error {
		out.Section(env.Name, env.App)
		return fn(ctx, env)
	})
	if errors.Is(err, apps.ErrNoApps) {
		return noAppsError(ctx, sel)
	}
	return err
}

func noAppsError(ctx context.Context, sel *apps.Selection) error {
	if sel.Settings().Len() == 0 {
		return fmt.Errorf("%w: no apps defined in %s (run 'san init' to create it)", apps.ErrNoApps, appsPath(ctx))
	}
	return fmt.Errorf("%w: pass one or more of %s, or %q",
		apps.ErrNoApps, strings.Join(sel.All(), ", "), apps.AllApps)
}

// newClient returns a heroku client running commands in the working
// directory, with the terminal attached unless ctx carries another Runner.
func newClient(ctx context.Context) *heroku.Client {
	cfg := config.FromContext(ctx)
	return heroku.New(cfg.HerokuBin, runcmd.RunnerFromContext(ctx, config.WorkDirFromContext(ctx)))
}

// completeApps completes environment names from the apps file.
func completeApps(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	settings, err := apps.Load(appsPath(cmd.Context()))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var matches []string
	for _, name := range append(settings.Names(), apps.AllApps) {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
