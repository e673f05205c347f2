// Package config manages user-level settings stored at ~/.supercharge/config.yaml.
// Values resolve flag > environment (SUPERCHARGE_*) > config file > default, and
// cover the blueprint URL, package manager, setup runtime and logging level.
package config
