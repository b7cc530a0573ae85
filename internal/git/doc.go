// Package git reads repository state via the git CLI.
//
// san only needs a little from git: the checked-out branch, which drives
// the app defaulting heuristic, and the configured remotes, which the
// "remotes" command consults before adding heroku remotes. Pushes go through
// the heroku package so they share its injected command runner.
//
// All operations shell out to git rather than using a Go git library, so the
// user's own configuration (SSH keys, credential helpers, aliases) applies.
package git
