package runtime

import (
	"context"
)

// Setup invokes the blueprint's own setup entry point,
// `<runtime> craft setup --name=<name>`, with interactive standard streams.
type Setup struct {
	Runtime string // e.g. "node"
	Runner  Runner
}

// Command returns the setup invocation for name inside dir.
func (s *Setup) Command(dir, name string) Command {
	rt := s.Runtime
	if rt == "" {
		rt = "node"
	}
	return Command{
		Name:        rt,
		Args:        []string{"craft", "setup", "--name=" + name},
		Dir:         dir,
		Interactive: true,
	}
}

// Run executes the setup command and returns its failure unchanged.
func (s *Setup) Run(ctx context.Context, dir, name string) error {
	return s.Runner.Run(ctx, s.Command(dir, name))
}
