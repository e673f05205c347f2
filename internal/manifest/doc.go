// Package manifest reads, patches, and writes a scaffolded project's
// package.json. Top-level key order and untouched values are preserved so the
// rewritten file differs from the blueprint's only in the patched fields.
package manifest
