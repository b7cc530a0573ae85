package git

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// CurrentBranch returns the branch checked out in dir.
// Returns "" for a detached HEAD.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// BranchReader returns a func that reads the current branch of dir.
// It matches the shape the app selection expects for its defaulting heuristic.
func BranchReader(dir string) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return CurrentBranch(ctx, dir)
	}
}

// Remotes lists the names of the remotes configured in dir.
func Remotes(ctx context.Context, dir string) ([]string, error) {
	output, err := outputGit(ctx, dir, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	var names []string
	for _, line := range strings.Split(string(output), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// HasRemote reports whether a remote called name exists in dir.
func HasRemote(ctx context.Context, dir, name string) (bool, error) {
	remotes, err := Remotes(ctx, dir)
	if err != nil {
		return false, err
	}
	return slices.Contains(remotes, name), nil
}

// RemoteURL returns the fetch URL of the named remote.
func RemoteURL(ctx context.Context, dir, name string) (string, error) {
	output, err := outputGit(ctx, dir, "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("failed to get url of remote %s: %w", name, err)
	}
	return strings.TrimSpace(string(output)), nil
}
