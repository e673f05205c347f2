package updater

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/superchargejs/cli/internal/branding"
	"go.uber.org/zap"
)

var (
	bannerVersionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	bannerHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// CheckAndPrintBanner prints an update banner from the cached version check.
// It never blocks: a stale cache is refreshed in a background goroutine for
// the next invocation. Local builds are skipped entirely.
func (u *Updater) CheckAndPrintBanner(w io.Writer, configDir string) {
	if !u.IsRelease() {
		return
	}

	cache, err := LoadCache(u.fs, configDir)
	if err != nil {
		u.logger.Debug("ignoring unreadable version cache", zap.Error(err))
		cache = nil
	}

	if cache != nil {
		// The cache may predate an upgrade of the binary itself.
		if available, err := IsUpdateAvailable(u.currentVersion, cache.LatestVersion); err == nil && available {
			PrintUpdateBanner(w, u.currentVersion, cache.LatestVersion)
		}
	}

	if IsCacheStale(cache, DefaultCacheMaxAge) {
		go u.refreshCache(context.Background(), configDir)
	}
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, current, latest string) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", current, bannerVersionStyle.Render(latest))
	fmt.Fprintf(w, "    %s\n\n", bannerHintStyle.Render(fmt.Sprintf("Run `%s update --check` for release notes", branding.CLIName())))
}

// refreshCache fetches the latest version and rewrites the cache file.
func (u *Updater) refreshCache(ctx context.Context, configDir string) {
	if err := u.RefreshCache(ctx, configDir); err != nil {
		u.logger.Debug("version check failed", zap.Error(err))
	}
}

// RefreshCache performs a synchronous version check and stores the result.
func (u *Updater) RefreshCache(ctx context.Context, configDir string) error {
	release, available, err := u.Check(ctx)
	if err != nil {
		return err
	}

	return SaveCache(u.fs, configDir, &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	})
}
