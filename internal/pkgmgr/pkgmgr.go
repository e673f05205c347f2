// Package pkgmgr installs a scaffolded project's dependencies with npm, yarn,
// or pnpm. The manager is configured explicitly or detected from the lockfile
// the blueprint ships.
package pkgmgr

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/superchargejs/cli/internal/runtime"
)

// Supported package managers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
	Auto = "auto"
)

// lockfiles maps lockfile names to the manager that writes them, in detection order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// Client runs a package manager's install command.
type Client struct {
	Manager string
	Runner  runtime.Runner
}

// Name returns the package manager binary name.
func (c *Client) Name() string {
	return c.Manager
}

// InstallCommand returns the install invocation scoped to dir.
func (c *Client) InstallCommand(dir string) runtime.Command {
	return runtime.Command{Name: c.Manager, Args: []string{"install"}, Dir: dir}
}

// Install installs every declared dependency of the project in dir.
func (c *Client) Install(ctx context.Context, dir string) error {
	return c.Runner.Run(ctx, c.InstallCommand(dir))
}

// Validate reports whether name is a supported manager or "auto".
func Validate(name string) error {
	switch name {
	case NPM, Yarn, PNPM, Auto:
		return nil
	default:
		return fmt.Errorf("unsupported package manager %q: must be one of auto, npm, yarn, pnpm", name)
	}
}

// Detect returns the manager implied by the lockfile present in dir, or npm.
func Detect(fsys afero.Fs, dir string) string {
	for _, lf := range lockfiles {
		if ok, _ := afero.Exists(fsys, filepath.Join(dir, lf.file)); ok {
			return lf.manager
		}
	}
	return NPM
}

// Resolve returns a Client for name. "auto" (or empty) is resolved by
// inspecting dir, so it must be called after the project exists on disk.
func Resolve(name string, fsys afero.Fs, dir string, runner runtime.Runner) (*Client, error) {
	if name == "" {
		name = Auto
	}
	if err := Validate(name); err != nil {
		return nil, err
	}
	if name == Auto {
		name = Detect(fsys, dir)
	}
	return &Client{Manager: name, Runner: runner}, nil
}

// Selector defers choosing a manager until Install runs, so "auto" can see
// the lockfile of the freshly cloned project.
type Selector struct {
	Manager string
	FS      afero.Fs
	Runner  runtime.Runner

	resolved *Client
}

// Install resolves the manager for dir and installs with it.
func (s *Selector) Install(ctx context.Context, dir string) error {
	c, err := Resolve(s.Manager, s.FS, dir, s.Runner)
	if err != nil {
		return err
	}
	s.resolved = c
	return c.Install(ctx, dir)
}

// Name returns the resolved manager, or the configured value before Install.
func (s *Selector) Name() string {
	if s.resolved != nil {
		return s.resolved.Name()
	}
	if s.Manager == "" {
		return Auto
	}
	return s.Manager
}
