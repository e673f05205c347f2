package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/superchargejs/cli/internal/branding"
	"github.com/superchargejs/cli/internal/config"
	"github.com/superchargejs/cli/internal/git"
	"github.com/superchargejs/cli/internal/pkgmgr"
	"github.com/superchargejs/cli/internal/runtime"
	"github.com/superchargejs/cli/internal/scaffold"
	"go.uber.org/zap"
)

var newNoSanitize bool

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// newFlagKeys maps flags of "new" to the config keys they override.
var newFlagKeys = map[string]string{
	"blueprint":       config.KeyBlueprint,
	"branch":          config.KeyBranch,
	"package-manager": config.KeyPackageManager,
}

func init() {
	newCmd.Flags().String("blueprint", "", "Git URL of the application blueprint")
	newCmd.Flags().String("branch", "", "Blueprint branch to clone (default: the remote's default branch)")
	newCmd.Flags().String("package-manager", "", "Package manager: auto, npm, yarn, or pnpm")
	newCmd.Flags().BoolVar(&newNoSanitize, "no-sanitize", false, "Keep the blueprint's package name, version, and description")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new application",
	Long: `Create a new application in ./<name> from the ` + branding.DisplayName() + ` blueprint.

The target directory must be missing or empty. The blueprint is cloned without
history, package.json is reset to the new name with version 0.0.0, dependencies
are installed, and the blueprint's setup command runs interactively.

Examples:
  ` + branding.CLIName() + ` new my-app
  ` + branding.CLIName() + ` new my-app --package-manager pnpm
  ` + branding.CLIName() + ` new my-app --branch next --no-sanitize`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	config.Load()
	// Bound per run: viper.Reset between invocations drops earlier bindings.
	for flag, key := range newFlagKeys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	manager := config.Get(config.KeyPackageManager)
	if err := pkgmgr.Validate(manager); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	req, err := scaffold.NewRequest(cwd, args[0])
	if err != nil {
		return err
	}

	logger, closeLog := openLogger(cmd.ErrOrStderr())
	defer closeLog()

	setup := &runtime.Setup{Runtime: config.Get(config.KeyRuntime), Runner: processRunner}
	pipeline, err := scaffold.New(scaffold.Deps{
		FS:       appFs,
		VCS:      &git.Client{Runner: processRunner, Branch: config.Get(config.KeyBranch)},
		Packages: &pkgmgr.Selector{Manager: manager, FS: appFs, Runner: processRunner},
		Setup:    setup,
		Reporter: newStepReporter(cmd.OutOrStdout()),
		Logger:   logger,
	}, scaffold.Options{
		Blueprint: config.Get(config.KeyBlueprint),
		Sanitize:  config.GetBool(config.KeySanitize) && !newNoSanitize,
	})
	if err != nil {
		return err
	}

	logger.Info("creating application",
		zap.String("name", req.Name()),
		zap.String("path", req.Path()),
		zap.String("blueprint", config.Get(config.KeyBlueprint)),
		zap.String("package_manager", manager),
	)

	result, err := pipeline.Run(cmd.Context(), req)
	if err != nil {
		if scaffold.KindOf(err) == scaffold.KindSetup {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%s\n", hintStyle.Render(fmt.Sprintf(
				"The application files were kept in %s. Run %q there once the problem is fixed.",
				req.Path(), setup.Command(req.Path(), req.Name()).String(),
			)))
		}
		return err
	}

	logger.Info("application created", zap.String("state", result.State.String()))

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", successStyle.Render("Your application is ready."))
	fmt.Fprintf(cmd.OutOrStdout(), "  cd %s\n\n", relativeTo(cwd, req.Path()))
	return nil
}

// relativeTo shortens path for display when it lives under base.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
