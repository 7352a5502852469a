package diff

import (
	"fmt"
	"strings"
)

// ChangeType identifies the kind of line change described by a hunk entry.
type ChangeType string

const (
	// ChangeContext represents a line present in both the original and the result.
	ChangeContext ChangeType = "context"
	// ChangeAdd represents a line present only in the result.
	ChangeAdd ChangeType = "add"
	// ChangeRemove represents a line present only in the original.
	ChangeRemove ChangeType = "remove"
)

// Change describes a single line-level change within a hunk. Content carries
// the exact line text without a trailing newline. LineNumber is a best-effort
// position in the resulting file, recorded while parsing.
type Change struct {
	Type       ChangeType
	Content    string
	LineNumber int
}

// Hunk captures one @@ block of a unified diff. OldStart/NewStart are 1-based
// line numbers; OldLines/NewLines are the line counts declared by the header.
// Replaying Changes consumes exactly OldLines original lines (context + remove)
// and produces exactly NewLines result lines (context + add).
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Changes  []Change
}

// ParsedDiff is the structured form of one file's unified-diff text. Hunks are
// ordered by ascending OldStart; OldFile/NewFile have the conventional a/ and
// b/ prefixes stripped.
type ParsedDiff struct {
	OldFile string
	NewFile string
	Hunks   []Hunk
}

// Error codes attached to ApplyError for callers that branch on failure kind.
const (
	CodeContextMismatch = "CONTEXT_MISMATCH"
	CodeRemoveMismatch  = "REMOVE_MISMATCH"
	CodeFuzzyExhausted  = "FUZZY_EXHAUSTED"
)

// ApplyError represents a structured failure while applying a patch. It
// satisfies the error interface so it can be returned directly from Apply
// helpers. Conflicts holds human-readable descriptions with 1-based line
// numbers plus expected and actual content.
type ApplyError struct {
	Message   string
	Code      string
	Conflicts []string
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "patch apply error"
}

// Detail renders the error together with its conflict list, suitable for
// surfacing to end users.
func (e *ApplyError) Detail() string {
	if e == nil {
		return "Unknown error occurred."
	}
	message := e.Message
	if message == "" {
		message = "Unknown error occurred."
	}
	if len(e.Conflicts) == 0 {
		return message
	}
	parts := make([]string, 0, len(e.Conflicts)+1)
	parts = append(parts, message)
	for _, conflict := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("  conflict: %s", conflict))
	}
	return strings.Join(parts, "\n")
}
