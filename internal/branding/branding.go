// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary. Values missing from the file
// fall back to the hard defaults in load.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	GitHubRepo   string `yaml:"github_repo"`
	BlueprintURL string `yaml:"blueprint_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:      "supercharge",
			DisplayName:  "Supercharge",
			Description:  "Create new Supercharge applications",
			HomeDir:      ".supercharge",
			EnvPrefix:    "SUPERCHARGE",
			GoModule:     "github.com/superchargejs/cli",
			GitHubRepo:   "superchargejs/cli",
			BlueprintURL: "git@github.com:superchargejs/supercharge.git",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "supercharge").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".supercharge").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SUPERCHARGE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string the updater checks for releases.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// BlueprintURL returns the git URL of the application blueprint cloned by "new".
func BlueprintURL() string { load(); return defaults.BlueprintURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("blueprint") → "SUPERCHARGE_BLUEPRINT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
