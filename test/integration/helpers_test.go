//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME for the run, holds ~/.supercharge
	WorkDir      string // where new applications are created
	BlueprintDir string // local git repository used as the blueprint
}

// BlueprintURL returns a clone URL for the local blueprint.
func (e *testEnv) BlueprintURL() string {
	return "file://" + filepath.ToSlash(e.BlueprintDir)
}

// setupTestEnv creates isolated temp directories and a committed blueprint
// repository. It skips the test when git is not installed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}

	env := &testEnv{
		HomeDir:      t.TempDir(),
		WorkDir:      t.TempDir(),
		BlueprintDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	setupBlueprint(t, env.BlueprintDir)
	return env
}

// setupBlueprint writes a minimal application blueprint and commits it on
// "main", plus a "next" branch with one extra file.
func setupBlueprint(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "supercharge",
  "version": "4.1.0",
  "description": "The Supercharge application blueprint",
  "private": true,
  "scripts": {
    "start": "node server.js"
  }
}
`)
	writeFile(t, filepath.Join(dir, "server.js"), "console.log('hello')\n")
	// The setup entry point records the name it was given.
	writeFile(t, filepath.Join(dir, "craft"), `if [ "$1" != "setup" ]; then
  echo "unknown command: $1" >&2
  exit 2
fi
printf '%s' "${2#--name=}" > .setup-name
`)

	runGit(t, dir, "init", "--initial-branch=main")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "blueprint")
	runGit(t, dir, "checkout", "-b", "next")
	writeFile(t, filepath.Join(dir, "NEXT.md"), "next branch\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "next")
	runGit(t, dir, "checkout", "main")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{
		"-c", "user.name=Test",
		"-c", "user.email=test@example.test",
		"-c", "commit.gpgsign=false",
	}, args...)...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
