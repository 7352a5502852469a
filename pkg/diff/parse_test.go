package diff

import (
	"reflect"
	"strings"
	"testing"
)

const simpleDiff = `--- a/notes.txt
+++ b/notes.txt
@@ -1,3 +1,3 @@
 a
-b
+B
 c`

func TestParseSimpleDiff(t *testing.T) {
	t.Parallel()

	parsed := Parse(simpleDiff)
	if got, want := parsed.OldFile, "notes.txt"; got != want {
		t.Fatalf("old file mismatch: got %q want %q", got, want)
	}
	if got, want := parsed.NewFile, "notes.txt"; got != want {
		t.Fatalf("new file mismatch: got %q want %q", got, want)
	}
	if got, want := len(parsed.Hunks), 1; got != want {
		t.Fatalf("unexpected hunk count: got %d want %d", got, want)
	}

	hunk := parsed.Hunks[0]
	if hunk.OldStart != 1 || hunk.OldLines != 3 || hunk.NewStart != 1 || hunk.NewLines != 3 {
		t.Fatalf("unexpected hunk header: %+v", hunk)
	}

	want := []Change{
		{Type: ChangeContext, Content: "a", LineNumber: 1},
		{Type: ChangeRemove, Content: "b", LineNumber: 2},
		{Type: ChangeAdd, Content: "B", LineNumber: 2},
		{Type: ChangeContext, Content: "c", LineNumber: 3},
	}
	if !reflect.DeepEqual(hunk.Changes, want) {
		t.Fatalf("unexpected changes:\ngot  %+v\nwant %+v", hunk.Changes, want)
	}
}

func TestParseHeaderCountsDefaultToOne(t *testing.T) {
	t.Parallel()

	parsed := Parse(strings.Join([]string{
		"--- a/f",
		"+++ b/f",
		"@@ -3 +3 @@",
		"-old",
		"+new",
	}, "\n"))
	if len(parsed.Hunks) != 1 {
		t.Fatalf("expected one hunk, got %d", len(parsed.Hunks))
	}
	hunk := parsed.Hunks[0]
	if hunk.OldStart != 3 || hunk.OldLines != 1 || hunk.NewStart != 3 || hunk.NewLines != 1 {
		t.Fatalf("unexpected hunk header: %+v", hunk)
	}
}

func TestParseSkipsMalformedHunkHeader(t *testing.T) {
	t.Parallel()

	parsed := Parse(strings.Join([]string{
		"--- a/f",
		"+++ b/f",
		"@@ broken header @@",
		"+orphan",
		"@@ -1 +1 @@",
		"-x",
		"+y",
	}, "\n"))
	// The malformed header does not start a hunk, so the "+orphan" line has
	// no active hunk and is dropped with it.
	if got, want := len(parsed.Hunks), 1; got != want {
		t.Fatalf("unexpected hunk count: got %d want %d", got, want)
	}
	if got, want := len(parsed.Hunks[0].Changes), 2; got != want {
		t.Fatalf("unexpected change count: got %d want %d", got, want)
	}
}

func TestParseIgnoresStrayLinesInsideHunk(t *testing.T) {
	t.Parallel()

	parsed := Parse(strings.Join([]string{
		"--- a/f",
		"+++ b/f",
		"@@ -1 +1 @@",
		"-x",
		"+y",
		`\ No newline at end of file`,
	}, "\n"))
	if got, want := len(parsed.Hunks[0].Changes), 2; got != want {
		t.Fatalf("unexpected change count: got %d want %d", got, want)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	t.Parallel()

	first := Parse(simpleDiff)
	second := Parse(simpleDiff)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parses differ:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestExtractFilePath(t *testing.T) {
	t.Parallel()

	if got, want := ExtractFilePath(simpleDiff), "notes.txt"; got != want {
		t.Fatalf("unexpected path: got %q want %q", got, want)
	}
	if got := ExtractFilePath("no diff here"); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestIsValidDiff(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want bool
	}{
		{"complete", simpleDiff, true},
		{"missing old header", "+++ b/f\n@@ -1 +1 @@", false},
		{"missing new header", "--- a/f\n@@ -1 +1 @@", false},
		{"missing hunk marker", "--- a/f\n+++ b/f", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		if got := IsValidDiff(tc.text); got != tc.want {
			t.Errorf("%s: IsValidDiff = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseMultipleSplitsOnFileBoundaries(t *testing.T) {
	t.Parallel()

	combined := strings.Join([]string{
		"--- a/first.txt",
		"+++ b/first.txt",
		"@@ -1 +1 @@",
		"-one",
		"+uno",
		"--- a/second.txt",
		"+++ b/second.txt",
		"@@ -1 +1 @@",
		"-two",
		"+dos",
	}, "\n")

	diffs := ParseMultiple(combined)
	if got, want := len(diffs), 2; got != want {
		t.Fatalf("unexpected diff count: got %d want %d", got, want)
	}
	if diffs[0].NewFile != "first.txt" || diffs[1].NewFile != "second.txt" {
		t.Fatalf("unexpected file order: %q, %q", diffs[0].NewFile, diffs[1].NewFile)
	}
}

func TestParseMultipleDropsInvalidBlocks(t *testing.T) {
	t.Parallel()

	combined := strings.Join([]string{
		"--- a/good.txt",
		"+++ b/good.txt",
		"@@ -1 +1 @@",
		"-one",
		"+uno",
		"--- a/broken.txt",
		"this block never declares a new file or any hunks",
	}, "\n")

	diffs := ParseMultiple(combined)
	if got, want := len(diffs), 1; got != want {
		t.Fatalf("unexpected diff count: got %d want %d", got, want)
	}
	if got, want := diffs[0].NewFile, "good.txt"; got != want {
		t.Fatalf("unexpected surviving diff: got %q want %q", got, want)
	}
}

func TestParseNeverPanicsOnGarbage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"@@",
		"@@ -a,b +c,d @@",
		"random text\nwith lines\n",
		"--- ",
		"+++ ",
	}
	for _, input := range inputs {
		parsed := Parse(input)
		if parsed == nil {
			t.Fatalf("Parse(%q) returned nil", input)
		}
		if len(parsed.Hunks) != 0 {
			t.Fatalf("Parse(%q) produced hunks: %+v", input, parsed.Hunks)
		}
	}
}
