// Package diff provides helpers for parsing and applying unified-diff patches.
//
// The package is extracted from GoAgent's patch handling so that it can be reused
// by other tools. It exposes primitives to parse unified-diff text, apply the
// result to in-memory content (exactly or with a bounded fuzzy search), derive
// the reverse patch for undo, and compute change previews without mutating the
// original content.
package diff
