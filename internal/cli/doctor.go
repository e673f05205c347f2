package cli

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/superchargejs/cli/internal/config"
	"github.com/superchargejs/cli/internal/manifest"
	"github.com/superchargejs/cli/internal/pkgmgr"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

var doctorManifest string

func init() {
	doctorCmd.Flags().StringVar(&doctorManifest, "check-manifest", "", "Validate the package.json in the given project directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the tools needed by new are available",
	Long: `Run diagnostic checks: git, the configured runtime, and the package
managers must be on PATH, and the config file must be readable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		config.Load()

		if doctorManifest != "" {
			return checkManifest(out, doctorManifest)
		}

		problems := runToolCheck(out) + runConfigCheck(out)
		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	},
}

// runToolCheck reports the binaries the pipeline shells out to and returns
// the number of required ones that are missing.
func runToolCheck(w io.Writer) int {
	fmt.Fprintln(w, "Tool check:")
	problems := 0
	if !checkBinary(w, "git", true) {
		problems++
	}
	if !checkBinary(w, config.Get(config.KeyRuntime), true) {
		problems++
	}

	manager := config.Get(config.KeyPackageManager)
	if manager == pkgmgr.Auto {
		// Any of them may be picked from the blueprint's lockfile.
		for _, name := range []string{pkgmgr.NPM, pkgmgr.Yarn, pkgmgr.PNPM} {
			required := name == pkgmgr.NPM
			if !checkBinary(w, name, required) && required {
				problems++
			}
		}
		return problems
	}
	if !checkBinary(w, manager, true) {
		problems++
	}
	return problems
}

func checkBinary(w io.Writer, name string, required bool) bool {
	path, err := lookPath(name)
	if err != nil {
		if required {
			fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		} else {
			fmt.Fprintf(w, "  [INFO] %s not found (optional)\n", name)
		}
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	return true
}

func runConfigCheck(w io.Writer) int {
	fmt.Fprintln(w, "Config check:")
	problems := 0

	path := config.FilePath()
	if ok, _ := afero.Exists(appFs, path); !ok {
		fmt.Fprintf(w, "  [INFO] %s not found, using defaults\n", path)
	} else if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		problems++
	} else {
		fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	}

	if err := pkgmgr.Validate(config.Get(config.KeyPackageManager)); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		problems++
	}
	fmt.Fprintf(w, "  [ OK ] blueprint %s\n", config.Get(config.KeyBlueprint))
	return problems
}

func checkManifest(w io.Writer, dir string) error {
	path := filepath.Join(dir, manifest.FileName)
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := manifest.Validate(data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [FAIL] %s: %s\n", issue.Path, issue.Message)
		}
		return fmt.Errorf("%s is invalid", path)
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	return nil
}
