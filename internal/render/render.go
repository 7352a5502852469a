// Package render turns patch previews into styled terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/asynkron/unidiff/pkg/diff"
)

// Styles holds the lipgloss styles used for each visual element of a preview.
type Styles struct {
	Header     lipgloss.Style
	Stats      lipgloss.Style
	Added      lipgloss.Style
	Removed    lipgloss.Style
	LineNumber lipgloss.Style
}

// DefaultStyles returns the standard diff palette: green additions, red
// removals, dimmed line numbers.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true),
		Stats:      lipgloss.NewStyle().Faint(true),
		Added:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#5af78e"}),
		Removed:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#bb0000", Dark: "#ff5c57"}),
		LineNumber: lipgloss.NewStyle().Faint(true).Width(5).Align(lipgloss.Right),
	}
}

// PlainStyles returns styles with no color or emphasis, for non-TTY output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:     plain,
		Stats:      plain,
		Added:      plain,
		Removed:    plain,
		LineNumber: lipgloss.NewStyle().Width(5).Align(lipgloss.Right),
	}
}

// StylesForEnvironment picks colored or plain styles based on the color
// profile advertised by the environment.
func StylesForEnvironment() Styles {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return PlainStyles()
	}
	return DefaultStyles()
}

// Preview renders a single file's preview: a header line, a stats line and
// one row per added or removed line, numbered in result coordinates.
func Preview(patch *diff.ParsedDiff, preview diff.Preview, styles Styles) string {
	var b strings.Builder

	name := patch.NewFile
	if name == "" {
		name = patch.OldFile
	}
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString(styles.Header.Render(name))
	b.WriteString("\n")
	b.WriteString(styles.Stats.Render(fmt.Sprintf("+%d -%d", preview.Additions, preview.Deletions)))
	b.WriteString("\n")

	for _, change := range preview.Changes {
		number := styles.LineNumber.Render(fmt.Sprintf("%d", change.Line))
		switch change.Type {
		case diff.ChangeAdd:
			b.WriteString(fmt.Sprintf("%s %s\n", number, styles.Added.Render("+ "+change.Content)))
		case diff.ChangeRemove:
			b.WriteString(fmt.Sprintf("%s %s\n", number, styles.Removed.Render("- "+change.Content)))
		}
	}
	return b.String()
}
