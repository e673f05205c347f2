// Package git clones application blueprints. It shells out to the git binary
// through a runtime.Runner so the pipeline never links a git implementation.
package git

import (
	"context"

	"github.com/superchargejs/cli/internal/runtime"
)

// MetadataDir is the version-control directory stripped after cloning.
const MetadataDir = ".git"

// Client performs shallow, single-branch clones.
type Client struct {
	Runner runtime.Runner
	// Branch selects a blueprint branch. Empty clones the remote's default branch.
	Branch string
}

// CloneCommand returns the git invocation used to clone url into dir.
func (c *Client) CloneCommand(url, dir string) runtime.Command {
	args := []string{"clone", "--depth=1", "--single-branch"}
	if c.Branch != "" {
		args = append(args, "--branch", c.Branch)
	}
	args = append(args, url, dir)
	return runtime.Command{Name: "git", Args: args}
}

// Clone fetches url into dir. dir may be missing or an empty directory.
func (c *Client) Clone(ctx context.Context, url, dir string) error {
	return c.Runner.Run(ctx, c.CloneCommand(url, dir))
}

// MetadataDir returns the name of the directory that holds repository history.
func (c *Client) MetadataDir() string {
	return MetadataDir
}
