package diff

// Reverse derives the structural inverse of a patch, independent of any file
// content: old and new file labels swap, each hunk's old and new ranges swap,
// and add/remove changes flip while context changes stay as they are.
// Applying the reverse to post-patch content reproduces the pre-patch content
// exactly, which makes it suitable for undo.
func Reverse(patch *ParsedDiff) *ParsedDiff {
	reversed := &ParsedDiff{
		OldFile: patch.NewFile,
		NewFile: patch.OldFile,
		Hunks:   make([]Hunk, len(patch.Hunks)),
	}
	for i, hunk := range patch.Hunks {
		out := Hunk{
			OldStart: hunk.NewStart,
			OldLines: hunk.NewLines,
			NewStart: hunk.OldStart,
			NewLines: hunk.OldLines,
			Changes:  make([]Change, len(hunk.Changes)),
		}
		for j, change := range hunk.Changes {
			flipped := change
			switch change.Type {
			case ChangeAdd:
				flipped.Type = ChangeRemove
			case ChangeRemove:
				flipped.Type = ChangeAdd
			case ChangeContext:
				// Context lines exist on both sides.
			}
			out.Changes[j] = flipped
		}
		reversed.Hunks[i] = out
	}
	return reversed
}
