package diff

import (
	"fmt"
	"strings"
)

// DefaultFuzziness is the offset window used when callers do not specify one.
const DefaultFuzziness = 2

// ApplyFuzzy behaves like Apply but tolerates positional drift: when a hunk
// fails at its declared start, candidate offsets from -fuzziness to +fuzziness
// are tried in ascending order and the first offset that applies cleanly is
// committed. Offsets that would place the start outside the file are skipped.
// When no offset succeeds the whole operation fails and the original content
// is returned untouched.
func ApplyFuzzy(originalContent string, patch *ParsedDiff, fuzziness int) (string, error) {
	lines := strings.Split(originalContent, "\n")
	for _, hunk := range patch.Hunks {
		updated, err := tryHunkOffsets(lines, hunk, fuzziness)
		if err != nil {
			return originalContent, err
		}
		lines = updated
	}
	return strings.Join(lines, "\n"), nil
}

// ApplyTextFuzzy parses diffText and applies it fuzzily to originalContent.
func ApplyTextFuzzy(originalContent, diffText string, fuzziness int) (string, error) {
	return ApplyFuzzy(originalContent, Parse(diffText), fuzziness)
}

func tryHunkOffsets(lines []string, hunk Hunk, fuzziness int) ([]string, error) {
	if updated, err := applyHunk(lines, hunk); err == nil {
		return updated, nil
	}

	// Earlier-in-file offsets are tried before later ones. The scan order is a
	// deliberate tie-break: it determines which placement wins when several
	// offsets would apply.
	for offset := -fuzziness; offset <= fuzziness; offset++ {
		start := hunk.OldStart - 1 + offset
		if start < 0 || start >= len(lines) {
			continue
		}
		shifted := hunk
		shifted.OldStart = hunk.OldStart + offset
		// applyHunk works on a throwaway copy, so a failed candidate leaves
		// the real sequence untouched.
		if updated, err := applyHunk(lines, shifted); err == nil {
			return updated, nil
		}
	}

	return nil, &ApplyError{
		Message: fmt.Sprintf("hunk at line %d does not apply within fuzziness %d", hunk.OldStart, fuzziness),
		Code:    CodeFuzzyExhausted,
	}
}
