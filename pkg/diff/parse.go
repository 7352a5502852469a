package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderPattern recognizes "@@ -<oldStart>[,<oldLines>] +<newStart>[,<newLines>] @@".
// Missing counts default to 1 per the unified-diff convention.
var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse converts unified-diff text into a ParsedDiff. Parsing is liberal:
// malformed hunk headers and unrecognized lines are skipped rather than
// failing the whole parse, so Parse never returns an error.
func Parse(diffText string) *ParsedDiff {
	parsed := &ParsedDiff{}

	var (
		currentHunk *Hunk
		lineNumber  int
	)

	flushHunk := func() {
		if currentHunk == nil {
			return
		}
		parsed.Hunks = append(parsed.Hunks, *currentHunk)
		currentHunk = nil
	}

	for _, line := range strings.Split(diffText, "\n") {
		if path, ok := strings.CutPrefix(line, "--- "); ok {
			parsed.OldFile = stripPathPrefix(path, "a/")
			continue
		}
		if path, ok := strings.CutPrefix(line, "+++ "); ok {
			parsed.NewFile = stripPathPrefix(path, "b/")
			continue
		}

		if strings.HasPrefix(line, "@@") {
			match := hunkHeaderPattern.FindStringSubmatch(line)
			if match == nil {
				// Malformed header: skipped, does not start a hunk.
				continue
			}
			flushHunk()
			currentHunk = &Hunk{
				OldStart: mustAtoi(match[1]),
				OldLines: atoiDefault(match[2], 1),
				NewStart: mustAtoi(match[3]),
				NewLines: atoiDefault(match[4], 1),
			}
			lineNumber = currentHunk.NewStart
			continue
		}

		if currentHunk == nil || line == "" {
			continue
		}

		switch line[0] {
		case '+':
			currentHunk.Changes = append(currentHunk.Changes, Change{
				Type:       ChangeAdd,
				Content:    line[1:],
				LineNumber: lineNumber,
			})
			lineNumber++
		case '-':
			// Removed lines do not occupy a slot in the result numbering.
			currentHunk.Changes = append(currentHunk.Changes, Change{
				Type:       ChangeRemove,
				Content:    line[1:],
				LineNumber: lineNumber,
			})
		case ' ':
			currentHunk.Changes = append(currentHunk.Changes, Change{
				Type:       ChangeContext,
				Content:    line[1:],
				LineNumber: lineNumber,
			})
			lineNumber++
		default:
			// Stray lines such as "\ No newline at end of file" are ignored.
		}
	}

	flushHunk()
	return parsed
}

// ExtractFilePath returns the new-file path parsed from the first "+++ b/<path>"
// line of the diff, or the empty string when no such line exists.
func ExtractFilePath(diffText string) string {
	for _, line := range strings.Split(diffText, "\n") {
		if path, ok := strings.CutPrefix(line, "+++ "); ok {
			return stripPathPrefix(path, "b/")
		}
	}
	return ""
}

// IsValidDiff reports whether the text looks like a unified diff. It is a
// cheap admissibility filter, not a full grammar check: the text must contain
// the "---", "+++" and "@@" markers.
func IsValidDiff(diffText string) bool {
	return strings.Contains(diffText, "---") &&
		strings.Contains(diffText, "+++") &&
		strings.Contains(diffText, "@@")
}

// ParseMultiple splits concatenated multi-file diff text on boundaries that
// begin a new "--- a/" block and parses each block independently. Blocks that
// fail IsValidDiff are dropped silently; callers receive only the diffs that
// parsed successfully.
func ParseMultiple(diffText string) []*ParsedDiff {
	var parsed []*ParsedDiff
	for _, block := range splitDiffBlocks(diffText) {
		if !IsValidDiff(block) {
			continue
		}
		parsed = append(parsed, Parse(block))
	}
	return parsed
}

// splitDiffBlocks cuts the text before every line that starts a new "--- a/"
// file header, so each block retains its own delimiter.
func splitDiffBlocks(diffText string) []string {
	lines := strings.Split(diffText, "\n")
	var (
		blocks  []string
		current []string
	)
	for _, line := range lines {
		if strings.HasPrefix(line, "--- a/") && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func stripPathPrefix(path, prefix string) string {
	path = strings.TrimSpace(path)
	return strings.TrimPrefix(path, prefix)
}

func mustAtoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}

func atoiDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
