package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/superchargejs/cli/internal/runtime"
)

const blueprintManifest = `{
  "name": "supercharge",
  "version": "3.0.0",
  "description": "Supercharge application blueprint",
  "private": true
}
`

// fakeRunner imitates git, the package managers, and the setup command
// without touching the network.
type fakeRunner struct {
	mu    sync.Mutex
	calls []runtime.Command
	fail  map[string]error // keyed by binary name
}

func (r *fakeRunner) Run(_ context.Context, c runtime.Command) error {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()

	if err := r.fail[c.Name]; err != nil {
		return err
	}
	if c.Name == "git" && len(c.Args) > 0 && c.Args[0] == "clone" {
		dir := c.Args[len(c.Args)-1]
		files := map[string]string{
			"package.json":      blueprintManifest,
			"package-lock.json": "{}",
			".git/HEAD":         "ref: refs/heads/main\n",
			"craft":             "#!/usr/bin/env node\n",
		}
		for name, content := range files {
			path := filepath.Join(dir, name)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeRunner) commandLines() []string {
	var lines []string
	for _, c := range r.calls {
		lines = append(lines, c.String())
	}
	return lines
}

// setupCLI isolates HOME, config, and the working directory, and installs a
// fake process runner. It returns the working directory.
func setupCLI(t *testing.T) (string, *fakeRunner) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	work := t.TempDir()
	prevWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWd) })
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{fail: map[string]error{}}
	prevRunner, prevFs := processRunner, appFs
	processRunner, appFs = runner, afero.NewOsFs()
	t.Cleanup(func() { processRunner, appFs = prevRunner, prevFs })

	return cwd, runner
}

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag in the tree to its default, since the
// command tree is shared between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, s)
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("ExitCode(err) = %d, want 1", got)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New(`The install directory is not empty. Cannot install into "my-app".`))

	out := buf.String()
	assertContains(t, out, "Error")
	assertContains(t, out, `Cannot install into "my-app".`)
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Errorf("error should be a single line, got %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t)
	prev := [3]string{buildVersion, buildCommit, buildDate}
	buildVersion, buildCommit, buildDate = "1.4.0", "abc1234", "2026-01-01"
	t.Cleanup(func() { buildVersion, buildCommit, buildDate = prev[0], prev[1], prev[2] })

	out, _, err := executeCommand(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "supercharge version 1.4.0 (commit: abc1234")

	out, _, err = executeCommand(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1.4.0\n" {
		t.Errorf("version --short = %q", out)
	}

	out, _, err = executeCommand(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, `"commit": "abc1234"`)
}
