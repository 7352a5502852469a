package diff

import (
	"fmt"
	"strings"
)

// Apply replays every hunk of the patch against originalContent and returns
// the resulting text. Context and remove lines are verified byte-exact against
// the original; on any mismatch the whole operation fails, the returned string
// is the original content untouched, and the error is an *ApplyError carrying
// the conflict details.
func Apply(originalContent string, patch *ParsedDiff) (string, error) {
	lines := strings.Split(originalContent, "\n")
	for _, hunk := range patch.Hunks {
		updated, err := applyHunk(lines, hunk)
		if err != nil {
			return originalContent, err
		}
		lines = updated
	}
	return strings.Join(lines, "\n"), nil
}

// ApplyText parses diffText and applies it to originalContent.
func ApplyText(originalContent, diffText string) (string, error) {
	return Apply(originalContent, Parse(diffText))
}

// applyHunk replays one hunk against a copy of lines and returns the mutated
// copy. The input slice is never modified, so a failed hunk leaves the
// caller's sequence exactly as it was at hunk entry.
func applyHunk(lines []string, hunk Hunk) ([]string, error) {
	work := append([]string(nil), lines...)
	cursor := hunk.OldStart - 1
	if cursor < 0 {
		// Hunks such as "@@ -0,0 +1 @@" address the slot before line 1.
		cursor = 0
	}

	for _, change := range hunk.Changes {
		switch change.Type {
		case ChangeContext:
			actual, ok := lineAt(work, cursor)
			if !ok || actual != change.Content {
				return nil, &ApplyError{
					Message: "patch does not apply",
					Code:    CodeContextMismatch,
					Conflicts: []string{fmt.Sprintf(
						"Context mismatch at line %d. Expected %q, found %q.",
						cursor+1, change.Content, describeLine(actual, ok),
					)},
				}
			}
			cursor++
		case ChangeRemove:
			actual, ok := lineAt(work, cursor)
			if !ok || actual != change.Content {
				return nil, &ApplyError{
					Message: "patch does not apply",
					Code:    CodeRemoveMismatch,
					Conflicts: []string{fmt.Sprintf(
						"Cannot remove line %d. Content mismatch. Expected %q, found %q.",
						cursor+1, change.Content, describeLine(actual, ok),
					)},
				}
			}
			// The deletion shifts subsequent lines into the cursor's position,
			// so the cursor stays put.
			work = splice(work, cursor, 1, nil)
		case ChangeAdd:
			if cursor > len(work) {
				// Insertion past the end clamps to an append.
				cursor = len(work)
			}
			work = splice(work, cursor, 0, []string{change.Content})
			cursor++
		}
	}
	return work, nil
}

// splice returns target with deleteCount entries removed at index and
// replacement inserted in their place.
func splice(target []string, index, deleteCount int, replacement []string) []string {
	result := make([]string, 0, len(target)-deleteCount+len(replacement))
	result = append(result, target[:index]...)
	result = append(result, replacement...)
	result = append(result, target[index+deleteCount:]...)
	return result
}

func lineAt(lines []string, cursor int) (string, bool) {
	if cursor < 0 || cursor >= len(lines) {
		return "", false
	}
	return lines[cursor], true
}

func describeLine(content string, ok bool) string {
	if !ok {
		return "<end of file>"
	}
	return content
}
