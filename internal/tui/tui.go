// Package tui provides an interactive pager for patch previews.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

type model struct {
	title   string
	content string

	vp    viewport.Model
	ready bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.vp.View(), m.footerView())
}

func (m model) headerView() string {
	return titleStyle.Render(m.title)
}

func (m model) footerView() string {
	scroll := ""
	if m.ready {
		scroll = fmt.Sprintf("%3.f%%  ", m.vp.ScrollPercent()*100)
	}
	return footerStyle.Render(scroll + "↑/↓ scroll · q quit")
}

// Show pages the rendered preview in an alternate-screen viewport and blocks
// until the user quits.
func Show(title, content string) error {
	m := model{
		title:   title,
		content: strings.TrimRight(content, "\n"),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
