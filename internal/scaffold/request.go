package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Request identifies the application to create. It is immutable once built.
type Request struct {
	name string
	path string
}

// NewRequest resolves name against cwd. An absolute name is used as is.
func NewRequest(cwd, name string) (Request, error) {
	if strings.TrimSpace(name) == "" {
		return Request{}, fmt.Errorf("application name is required")
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, name)
	}
	return Request{name: name, path: filepath.Clean(path)}, nil
}

// Name returns the name exactly as the user typed it.
func (r Request) Name() string { return r.name }

// Path returns the absolute installation directory.
func (r Request) Path() string { return r.path }
