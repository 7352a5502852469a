package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asynkron/unidiff/pkg/diff"
)

const sampleDiff = `--- a/notes.txt
+++ b/notes.txt
@@ -1,3 +1,3 @@
 a
-b
+B
 c`

func TestPreviewRendersHeaderStatsAndChanges(t *testing.T) {
	parsed := diff.Parse(sampleDiff)
	out := Preview(parsed, diff.PreviewPatch(parsed), PlainStyles())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "notes.txt", lines[0])
	require.Equal(t, "+1 -1", lines[1])
	require.Contains(t, lines[2], "- b")
	require.Contains(t, lines[3], "+ B")
	// Result-coordinate line numbers in the gutter.
	require.Contains(t, lines[2], "2")
	require.Contains(t, lines[3], "2")
}

func TestPreviewFallsBackToOldFileName(t *testing.T) {
	parsed := &diff.ParsedDiff{OldFile: "legacy.txt"}
	out := Preview(parsed, diff.PreviewPatch(parsed), PlainStyles())
	require.Contains(t, out, "legacy.txt")
}

func TestPreviewUnnamedDiff(t *testing.T) {
	out := Preview(&diff.ParsedDiff{}, diff.Preview{}, PlainStyles())
	require.Contains(t, out, "(unnamed)")
}
