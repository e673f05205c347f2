package scaffold

import (
	"errors"
)

// ErrDirectoryNotEmpty is wrapped by the precondition error raised when the
// installation directory already has content.
var ErrDirectoryNotEmpty = errors.New("install directory is not empty")

// Kind classifies pipeline failures by the step that raised them.
type Kind string

// Failure kinds.
const (
	KindPrecondition      Kind = "precondition"
	KindClone             Kind = "clone"
	KindManifest          Kind = "manifest"
	KindDependencyInstall Kind = "dependency-install"
	KindSetup             Kind = "setup"
)

// Error is returned by Pipeline.Run for every failed step.
type Error struct {
	Kind Kind
	Step string
	Msg  string // optional; when empty the cause's message is used unchanged
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind) + " failed"
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or "" if err did not come from the pipeline.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
