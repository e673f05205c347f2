// Package updater tells users when a newer CLI release exists. A cached
// daily check of GitHub Releases powers the startup banner; "update --check"
// queries the latest release directly.
package updater
