package heroku

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/herokusan/san/internal/apps"
	"github.com/herokusan/san/internal/cmd"
)

// DefaultBin is the heroku executable looked up on PATH.
const DefaultBin = "heroku"

// Maintenance actions accepted by the heroku CLI.
const (
	MaintenanceOn  = "on"
	MaintenanceOff = "off"
)

// Client runs heroku and git commands for one app at a time.
type Client struct {
	bin    string
	git    string
	runner cmd.Runner
}

// New creates a Client invoking bin through runner. An empty bin means
// DefaultBin.
func New(bin string, runner cmd.Runner) *Client {
	if bin == "" {
		bin = DefaultBin
	}
	return &Client{bin: bin, git: "git", runner: runner}
}

func (c *Client) heroku(ctx context.Context, app string, args ...string) error {
	return c.runner.Run(ctx, c.bin, append(args, "--app", app)...)
}

// Migrate runs the database migrations and then restarts the app. The
// restart is skipped when the migration fails.
func (c *Client) Migrate(ctx context.Context, app string) error {
	if err := c.heroku(ctx, app, "rake", "db:migrate"); err != nil {
		return err
	}
	return c.Restart(ctx, app)
}

// Maintenance switches maintenance mode. action is passed through as is,
// normally MaintenanceOn or MaintenanceOff.
func (c *Client) Maintenance(ctx context.Context, app, action string) error {
	return c.heroku(ctx, app, "maintenance:"+action)
}

// Restart restarts every dyno of the app.
func (c *Client) Restart(ctx context.Context, app string) error {
	return c.heroku(ctx, app, "restart")
}

// PushConfig sets config vars on the app in a single call, keys sorted.
// An empty config runs nothing.
func (c *Client) PushConfig(ctx context.Context, app string, config map[string]string) error {
	if len(config) == 0 {
		return nil
	}
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := []string{"config:add"}
	for _, k := range keys {
		args = append(args, k+"="+config[k])
	}
	return c.heroku(ctx, app, args...)
}

// Logs prints the app's recent log lines, or follows them when tail is set.
func (c *Client) Logs(ctx context.Context, app string, tail bool) error {
	args := []string{"logs"}
	if tail {
		args = append(args, "--tail")
	}
	return c.heroku(ctx, app, args...)
}

// Push sends ref to the master branch of repo.
func (c *Client) Push(ctx context.Context, repo, ref string, force bool) error {
	args := []string{"push", repo, refspec(ref)}
	if force {
		args = append(args, "--force")
	}
	return c.runner.Run(ctx, c.git, args...)
}

// AddRemote registers repo as a git remote called name.
func (c *Client) AddRemote(ctx context.Context, name, repo string) error {
	return c.runner.Run(ctx, c.git, "remote", "add", name, repo)
}

// DeployOptions controls Deploy.
type DeployOptions struct {
	// Host is the git host used to build the app's repo URL.
	Host string
	// Ref is the local ref pushed to the app. Empty means HEAD.
	Ref   string
	Force bool
	// Maintenance wraps the deploy in maintenance mode.
	Maintenance bool
}

// Deploy pushes the environment's code and then migrates it. With
// opts.Maintenance the app is put into maintenance first and taken out
// again afterwards, even when the deploy failed.
func (c *Client) Deploy(ctx context.Context, env apps.Environment, opts DeployOptions) (err error) {
	if opts.Maintenance {
		if err := c.Maintenance(ctx, env.App, MaintenanceOn); err != nil {
			return err
		}
		defer func() {
			if offErr := c.Maintenance(ctx, env.App, MaintenanceOff); offErr != nil {
				err = errors.Join(err, offErr)
			}
		}()
	}

	if err := c.Push(ctx, env.Repo(opts.Host), opts.Ref, opts.Force); err != nil {
		return err
	}
	return c.Migrate(ctx, env.App)
}

func refspec(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = "HEAD"
	}
	return ref + ":refs/heads/master"
}
