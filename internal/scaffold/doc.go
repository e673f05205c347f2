// Package scaffold creates a new application from the blueprint repository.
// It powers the "new" command: a fixed, ordered list of steps (path check,
// clone, manifest sanitizing, dependency install, setup) that stops at the
// first failure. Every external effect goes through an injected collaborator
// so each step can be exercised with fakes.
package scaffold
