// Package runtime spawns the child processes the scaffold pipeline depends on.
// Runner abstracts process execution so pipeline collaborators (git, the
// package manager, the blueprint's setup command) can be exercised with fakes.
package runtime
