package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a command's binary is not on PATH.
var ErrNotFound = errors.New("executable not found in PATH")

// Command describes a single child process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Interactive connects the runner's stdin, stdout, and stderr directly to
	// the child so it can prompt the user. Output is not captured.
	Interactive bool
}

// String returns the command line as the user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes commands to completion.
type Runner interface {
	// Run blocks until the command exits. A non-zero exit is reported as *ExitError.
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command.String(), e.Code)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}
