package diff

// PreviewChange describes one added or removed line in result coordinates.
type PreviewChange struct {
	Line    int
	Type    ChangeType
	Content string
}

// Preview summarizes a patch without touching any content: total addition and
// deletion counts plus a per-line change list. Line numbers are expressed in
// the resulting file's coordinate space, mirroring the parser's bookkeeping.
type Preview struct {
	Additions int
	Deletions int
	Changes   []PreviewChange
}

// PreviewPatch walks each hunk's changes with a cursor seeded at the hunk's
// new-file start: adds are recorded and advance the cursor, removes are
// recorded without advancing (removed lines hold no position in the result),
// and context lines advance silently.
func PreviewPatch(patch *ParsedDiff) Preview {
	var preview Preview
	for _, hunk := range patch.Hunks {
		line := hunk.NewStart
		for _, change := range hunk.Changes {
			switch change.Type {
			case ChangeAdd:
				preview.Additions++
				preview.Changes = append(preview.Changes, PreviewChange{
					Line:    line,
					Type:    ChangeAdd,
					Content: change.Content,
				})
				line++
			case ChangeRemove:
				preview.Deletions++
				preview.Changes = append(preview.Changes, PreviewChange{
					Line:    line,
					Type:    ChangeRemove,
					Content: change.Content,
				})
			case ChangeContext:
				line++
			}
		}
	}
	return preview
}
