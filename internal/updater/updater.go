package updater

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultAPIBase = "https://api.github.com"

// Release represents a GitHub release.
type Release struct {
	Version   string    `json:"tag_name"`
	Name      string    `json:"name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
	Draft     bool      `json:"draft"`
}

// Updater checks for newer releases of the running binary.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	fs             afero.Fs
	logger         *zap.Logger
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase points release lookups at another GitHub-compatible API.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		u.apiBase = strings.TrimRight(base, "/")
	}
}

// WithFs sets the filesystem holding the version cache.
func WithFs(fsys afero.Fs) Option {
	return func(u *Updater) {
		u.fs = fsys
	}
}

// WithLogger sets the logger used for background refresh diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(u *Updater) {
		u.logger = l
	}
}

// New creates an Updater with the given current version and options.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		apiBase:        defaultAPIBase,
		fs:             afero.NewOsFs(),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// IsRelease reports whether the running binary carries a comparable release
// version. Local builds ("dev" or empty) never check for updates.
func (u *Updater) IsRelease() bool {
	v := strings.TrimSpace(u.currentVersion)
	if v == "" || v == "dev" {
		return false
	}
	_, err := parseSemver(v)
	return err == nil
}
