// Package cli implements the unidiff command line interface.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/asynkron/unidiff/internal/render"
	"github.com/asynkron/unidiff/internal/tui"
	"github.com/asynkron/unidiff/pkg/diff"
)

// Run executes the unidiff CLI using the provided arguments. It returns a
// POSIX-style exit code: 0 on success, 1 on apply or conflict failure, 2 on
// usage errors.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "apply":
		return runApply(ctx, args[1:], stdout, stderr)
	case "preview":
		return runPreview(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(stderr io.Writer) {
	fmt.Fprintln(stderr, "usage: unidiff <command> [flags]")
	fmt.Fprintln(stderr, "")
	fmt.Fprintln(stderr, "commands:")
	fmt.Fprintln(stderr, "  apply    apply a unified diff to a file or to files under a directory")
	fmt.Fprintln(stderr, "  preview  show addition/deletion stats and per-line changes")
}

func runApply(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("unidiff apply", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	patchPath := flagSet.String("patch", "", "path to the diff text, or - for stdin")
	fuzz := flagSet.Int("fuzz", envInt("UNIDIFF_FUZZ", 0), "fuzzy offset window; 0 applies exactly")
	reverse := flagSet.Bool("reverse", false, "apply the structural inverse of the patch (undo)")
	write := flagSet.Bool("write", false, "write results in place instead of the default dry run / stdout")
	dir := flagSet.String("dir", ".", "working directory for multi-file diffs")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	patchText, err := loadPatch(*patchPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	if flagSet.NArg() > 1 {
		fmt.Fprintln(stderr, "apply accepts at most one target file")
		return 2
	}

	if flagSet.NArg() == 1 {
		return applySingle(patchText, flagSet.Arg(0), *fuzz, *reverse, *write, stdout, stderr)
	}
	return applyTree(ctx, patchText, *dir, *fuzz, *reverse, *write, stdout, stderr)
}

// applySingle applies the whole patch text to one target file. The result
// goes to stdout unless -write is set.
func applySingle(patchText, target string, fuzz int, reverse, write bool, stdout, stderr io.Writer) int {
	parsed := diff.Parse(patchText)
	if reverse {
		parsed = diff.Reverse(parsed)
	}

	original, info, err := readTarget(target)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	updated, err := applyWithFuzz(original, parsed, fuzz)
	if err != nil {
		fmt.Fprintln(stderr, describeApplyError(err))
		return 1
	}

	if !write {
		fmt.Fprint(stdout, updated)
		return 0
	}
	if err := os.WriteFile(target, []byte(updated), info.Mode()); err != nil {
		fmt.Fprintf(stderr, "failed to write %s: %v\n", target, err)
		return 1
	}
	fmt.Fprintf(stdout, "M %s\n", target)
	return 0
}

// applyTree applies a multi-file diff to files under dir. Without -write it
// is a dry run: every file is checked and reported, nothing is touched.
func applyTree(ctx context.Context, patchText, dir string, fuzz int, reverse, write bool, stdout, stderr io.Writer) int {
	blocks := diff.ParseMultiple(patchText)
	if len(blocks) == 0 {
		fmt.Fprintln(stderr, "no valid diffs found in patch text")
		return 1
	}

	// Resolve all targets and results before touching anything, so a failing
	// file never leaves the tree half-patched.
	type pending struct {
		path    string
		content string
		mode    os.FileMode
	}
	var updates []pending

	for _, block := range blocks {
		if ctx.Err() != nil {
			fmt.Fprintf(stderr, "%v\n", ctx.Err())
			return 1
		}

		target := block.NewFile
		if target == "" {
			target = block.OldFile
		}
		if target == "" {
			fmt.Fprintln(stderr, "diff block carries no file path")
			return 1
		}

		parsed := block
		if reverse {
			parsed = diff.Reverse(block)
		}

		path := joinDir(dir, target)
		original, info, err := readTarget(path)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}

		updated, err := applyWithFuzz(original, parsed, fuzz)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", target, describeApplyError(err))
			return 1
		}
		updates = append(updates, pending{path: path, content: updated, mode: info.Mode()})

		preview := diff.PreviewPatch(parsed)
		fmt.Fprintf(stdout, "ok %s (+%d -%d)\n", target, preview.Additions, preview.Deletions)
	}

	if !write {
		return 0
	}
	for _, update := range updates {
		if err := os.WriteFile(update.path, []byte(update.content), update.mode); err != nil {
			fmt.Fprintf(stderr, "failed to write %s: %v\n", update.path, err)
			return 1
		}
		fmt.Fprintf(stdout, "M %s\n", update.path)
	}
	return 0
}

func runPreview(args []string, stdout, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("unidiff preview", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	patchPath := flagSet.String("patch", "", "path to the diff text, or - for stdin")
	interactive := flagSet.Bool("interactive", false, "page the preview in an interactive viewer")
	plain := flagSet.Bool("plain", false, "disable colored output")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	patchText, err := loadPatch(*patchPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	blocks := diff.ParseMultiple(patchText)
	if len(blocks) == 0 {
		fmt.Fprintln(stderr, "no valid diffs found in patch text")
		return 1
	}

	styles := render.StylesForEnvironment()
	if *plain {
		styles = render.PlainStyles()
	}

	var sections []string
	for _, block := range blocks {
		sections = append(sections, render.Preview(block, diff.PreviewPatch(block), styles))
	}
	content := strings.Join(sections, "\n")

	if *interactive {
		if err := tui.Show("unidiff preview", content); err != nil {
			fmt.Fprintf(stderr, "preview viewer failed: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprint(stdout, content)
	return 0
}

func applyWithFuzz(original string, parsed *diff.ParsedDiff, fuzz int) (string, error) {
	if fuzz > 0 {
		return diff.ApplyFuzzy(original, parsed, fuzz)
	}
	return diff.Apply(original, parsed)
}

func describeApplyError(err error) string {
	var applyErr *diff.ApplyError
	if errors.As(err, &applyErr) {
		return applyErr.Detail()
	}
	return err.Error()
}

func loadPatch(path string) (string, error) {
	if path == "" {
		return "", errors.New("missing required -patch flag")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read patch from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read patch: %w", err)
	}
	return string(data), nil
}

func readTarget(path string) (string, os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("cannot patch directory %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), info, nil
}

func joinDir(dir, target string) string {
	if dir == "" || dir == "." {
		return target
	}
	return filepath.Join(dir, target)
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
