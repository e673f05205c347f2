package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/superchargejs/cli/internal/manifest"
	"go.uber.org/zap"
)

// VCS clones the blueprint.
type VCS interface {
	// Clone performs a shallow, single-branch checkout of url into dir.
	Clone(ctx context.Context, url, dir string) error
	// MetadataDir names the history directory removed after cloning.
	MetadataDir() string
}

// PackageManager installs a project's declared dependencies.
type PackageManager interface {
	Install(ctx context.Context, dir string) error
	Name() string
}

// SetupCommand runs the blueprint's own setup entry point.
type SetupCommand interface {
	Run(ctx context.Context, dir, name string) error
}

// ManifestStore reads and writes the project manifest.
type ManifestStore interface {
	Load(fsys afero.Fs, dir string) (*manifest.Manifest, error)
	Save(fsys afero.Fs, dir string, m *manifest.Manifest) error
}

// Deps are the pipeline's collaborators.
type Deps struct {
	FS        afero.Fs
	VCS       VCS
	Packages  PackageManager
	Setup     SetupCommand
	Manifests ManifestStore // defaults to manifest.Store
	Reporter  Reporter      // optional
	Logger    *zap.Logger   // optional
}

// Options configure a pipeline.
type Options struct {
	Blueprint string // repository URL cloned into the new project
	Sanitize  bool   // rewrite name, version, and description after cloning
}

// Result describes how far a run got.
type Result struct {
	Request    Request
	State      State
	Completed  []string
	FailedStep string
}

// Pipeline creates applications from a blueprint.
type Pipeline struct {
	fs        afero.Fs
	vcs       VCS
	packages  PackageManager
	setup     SetupCommand
	manifests ManifestStore
	reporter  Reporter
	logger    *zap.Logger
	opts      Options
}

// New validates deps and opts and returns a Pipeline.
func New(deps Deps, opts Options) (*Pipeline, error) {
	switch {
	case deps.FS == nil:
		return nil, fmt.Errorf("scaffold: filesystem is required")
	case deps.VCS == nil:
		return nil, fmt.Errorf("scaffold: version-control client is required")
	case deps.Packages == nil:
		return nil, fmt.Errorf("scaffold: package manager is required")
	case deps.Setup == nil:
		return nil, fmt.Errorf("scaffold: setup command is required")
	case opts.Blueprint == "":
		return nil, fmt.Errorf("scaffold: blueprint URL is required")
	}

	p := &Pipeline{
		fs:        deps.FS,
		vcs:       deps.VCS,
		packages:  deps.Packages,
		setup:     deps.Setup,
		manifests: deps.Manifests,
		reporter:  deps.Reporter,
		logger:    deps.Logger,
		opts:      opts,
	}
	if p.manifests == nil {
		p.manifests = manifest.Store{}
	}
	if p.reporter == nil {
		p.reporter = nopReporter{}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p, nil
}

// Run creates the application described by req. Steps run strictly in order:
//  1. ensure-empty: the target is missing or an empty directory
//  2. clone: shallow clone of the blueprint, history removed
//  3. sanitize: name, version, and description reset (when enabled)
//  4. install: dependencies installed inside the target
//  5. setup: the blueprint's setup command, attached to the terminal
//
// The first failure aborts the run and is returned as *Error. A failed clone
// restores the target to its pre-run state; later failures leave the files in
// place. A setup failure is fatal like any other.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	r := &run{p: p, req: req}
	logger := p.logger.With(zap.String("name", req.Name()), zap.String("path", req.Path()))

	result, err := runSteps(ctx, r.steps(), p.reporter, logger)
	result.Request = req
	return result, err
}

// Steps returns the ordered step descriptors for req without running them.
func (p *Pipeline) Steps(req Request) []Step {
	return (&run{p: p, req: req}).steps()
}

// run holds per-invocation state shared between steps.
type run struct {
	p   *Pipeline
	req Request

	// created records that the target did not exist before the run.
	created bool
}

func (r *run) steps() []Step {
	steps := []Step{
		{Name: StepEnsureEmpty, Title: "Ensure installation directory is empty", Kind: KindPrecondition, Done: StatePathChecked, Run: r.ensureEmpty},
		{Name: StepClone, Title: "Crafting your application", Kind: KindClone, Done: StateCloned, Run: r.clone},
	}
	if r.p.opts.Sanitize {
		steps = append(steps, Step{Name: StepSanitize, Title: "Reset application manifest", Kind: KindManifest, Done: StateSanitized, Run: r.sanitize})
	}
	return append(steps,
		Step{Name: StepInstall, Title: "Install application dependencies", Kind: KindDependencyInstall, Done: StateDependenciesInstalled, Run: r.install},
		Step{Name: StepSetup, Title: "Initialize application setup", Kind: KindSetup, Done: StateSetupComplete, Run: r.setup},
	)
}

func (r *run) ensureEmpty(_ context.Context) error {
	path := r.req.Path()

	info, err := r.p.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.created = true
		return nil
	}
	if err != nil {
		return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf("Cannot inspect install directory %q: %v", r.req.Name(), err), Err: err}
	}
	if !info.IsDir() {
		return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf("The install path exists and is not a directory. Cannot install into %q.", r.req.Name())}
	}

	entries, err := afero.ReadDir(r.p.fs, path)
	if err != nil {
		return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf("Cannot read install directory %q: %v", r.req.Name(), err), Err: err}
	}
	if len(entries) > 0 {
		return &Error{
			Kind: KindPrecondition,
			Msg:  fmt.Sprintf("The install directory is not empty. Cannot install into %q.", r.req.Name()),
			Err:  ErrDirectoryNotEmpty,
		}
	}
	return nil
}

func (r *run) clone(ctx context.Context) error {
	path := r.req.Path()

	if err := r.p.vcs.Clone(ctx, r.p.opts.Blueprint, path); err != nil {
		r.restore()
		return err
	}

	metadata := filepath.Join(path, r.p.vcs.MetadataDir())
	if err := r.p.fs.RemoveAll(metadata); err != nil {
		r.restore()
		return fmt.Errorf("removing %s: %w", metadata, err)
	}
	return nil
}

// restore puts the target back the way ensureEmpty found it.
func (r *run) restore() {
	path := r.req.Path()

	if r.created {
		if err := r.p.fs.RemoveAll(path); err != nil {
			r.p.logger.Warn("removing partial clone", zap.String("path", path), zap.Error(err))
		}
		return
	}

	entries, err := afero.ReadDir(r.p.fs, path)
	if err != nil {
		r.p.logger.Warn("reading partial clone", zap.String("path", path), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if err := r.p.fs.RemoveAll(filepath.Join(path, entry.Name())); err != nil {
			r.p.logger.Warn("removing partial clone entry", zap.String("entry", entry.Name()), zap.Error(err))
		}
	}
}

func (r *run) sanitize(_ context.Context) error {
	m, err := r.p.manifests.Load(r.p.fs, r.req.Path())
	if err != nil {
		return err
	}
	// "." and ".." name the directory itself, so slug the resolved path.
	if err := m.Sanitize(filepath.Base(r.req.Path())); err != nil {
		return err
	}
	return r.p.manifests.Save(r.p.fs, r.req.Path(), m)
}

func (r *run) install(ctx context.Context) error {
	return r.p.packages.Install(ctx, r.req.Path())
}

func (r *run) setup(ctx context.Context) error {
	return r.p.setup.Run(ctx, r.req.Path(), r.req.Name())
}
