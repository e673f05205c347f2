package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/superchargejs/cli/internal/branding"
	"github.com/superchargejs/cli/internal/config"
	"github.com/superchargejs/cli/internal/logging"
	"github.com/superchargejs/cli/internal/runtime"
	"github.com/superchargejs/cli/internal/updater"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// verbose mirrors debug logs to stderr.
var verbose bool

// Collaborators shared by commands. Tests swap them for fakes.
var (
	appFs         afero.Fs       = afero.NewOsFs()
	processRunner runtime.Runner = runtime.NewExecRunner()
)

var errorBadge = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("15")).
	Background(lipgloss.Color("9")).
	Padding(0, 1)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates new applications from the official blueprint:
it clones the blueprint, resets the package manifest, installs dependencies,
and runs the blueprint's own setup.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Commands that talk to GitHub themselves skip the banner.
		switch cmd.Name() {
		case "update", "version", "help", "completion":
			return
		}

		// Non-blocking banner from cached version check.
		updater.New(buildVersion).CheckAndPrintBanner(cmd.ErrOrStderr(), config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags. A
// failure is printed once to stderr and returned; the caller decides the
// exit code.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// printError writes the single user-facing error line.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "\n%s %s\n", errorBadge.Render("Error"), err.Error())
}

// openLogger builds the file logger, mirroring to stderr in verbose mode.
// Failure to open the log file degrades to a no-op logger.
func openLogger(stderr io.Writer) (*zap.Logger, func()) {
	cfg := logging.Config{
		FilePath: config.LogPath(),
		Level:    config.Get(config.KeyLogLevel),
	}
	if verbose {
		cfg.Console = stderr
	}

	logger, closeFn, err := logging.New(cfg)
	if err != nil {
		if verbose {
			fmt.Fprintf(stderr, "logging disabled: %v\n", err)
		}
		return zap.NewNop(), func() {}
	}
	return logger, func() { _ = closeFn() }
}
