package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/superchargejs/cli/internal/branding"
	"github.com/superchargejs/cli/internal/config"
	"github.com/superchargejs/cli/internal/updater"
)

var updateCheck bool

// updaterOptions lets tests point the updater at a local release server.
var updaterOptions []updater.Option

func init() {
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only report; do not refresh the cached version check")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer " + branding.CLIName() + " release",
	Long: `Query GitHub Releases for the latest ` + branding.CLIName() + ` version and report
whether an update is available, with a link to the release.

  ` + branding.CLIName() + ` update            # check and refresh the startup banner cache
  ` + branding.CLIName() + ` update --check    # check only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		u := updater.New(buildVersion, updaterOptions...)

		fmt.Fprintln(cmd.ErrOrStderr(), "Checking for updates...")
		release, available, err := u.Check(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}

		switch {
		case !u.IsRelease():
			fmt.Fprintf(out, "Latest release is %s (running a development build)\n", release.Version)
		case available:
			fmt.Fprintf(out, "Update available: %s -> %s\n", buildVersion, release.Version)
			if release.HTMLURL != "" {
				fmt.Fprintf(out, "    %s\n", release.HTMLURL)
			}
		default:
			fmt.Fprintf(out, "You are on the latest version (%s)\n", buildVersion)
		}

		if updateCheck || !u.IsRelease() {
			return nil
		}
		if err := updater.SaveCache(appFs, config.Dir(), &updater.VersionCache{
			LatestVersion:   release.Version,
			CurrentVersion:  buildVersion,
			ReleaseURL:      release.HTMLURL,
			CheckedAt:       time.Now(),
			UpdateAvailable: available,
		}); err != nil {
			return fmt.Errorf("saving version cache: %w", err)
		}
		return nil
	},
}
