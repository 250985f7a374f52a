// Package tui is the brief history browser: archived runs on the
// left-hand list, the selected brief rendered in a viewport.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/aibrief/internal/config"
	"github.com/user/aibrief/internal/db"
)

type model struct {
	cfg      *config.Config
	store    *db.Store
	list     list.Model
	viewport viewport.Model
	viewing  bool
	width    int
	height   int
	err      error
}

type runItem struct {
	run db.Run
}

func (r runItem) Title() string {
	return r.run.Title
}

func (r runItem) Description() string {
	desc := fmt.Sprintf("%d items", r.run.Items)
	if n := len(r.run.Diagnostics); n > 0 {
		desc += fmt.Sprintf(", %d degraded", n)
	}
	return desc
}

func (r runItem) FilterValue() string {
	return r.run.Title + " " + r.run.Markdown
}

func initialModel(cfg *config.Config) model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "AI Morning Brief"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return model{
		cfg:      cfg,
		list:     l,
		viewport: viewport.New(0, 0),
	}
}

type initMsg struct {
	store *db.Store
	runs  []db.Run
	err   error
}

func (m model) Init() tea.Cmd {
	return m.initStore
}

func (m model) initStore() tea.Msg {
	store, err := db.NewStore(m.cfg.DBPath())
	if err != nil {
		return initMsg{err: err}
	}
	runs, err := store.ListRuns(100)
	if err != nil {
		return initMsg{store: store, err: err}
	}
	return initMsg{store: store, runs: runs}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.viewing {
				m.viewing = false
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.viewing {
				m.viewing = false
				return m, nil
			}
		case "enter":
			if !m.viewing {
				if item, ok := m.list.SelectedItem().(runItem); ok {
					m.viewport.SetContent(item.run.Markdown)
					m.viewport.GotoTop()
					m.viewing = true
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4

	case initMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.store = msg.store
		items := make([]list.Item, 0, len(msg.runs))
		for _, r := range msg.runs {
			items = append(items, runItem{run: r})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	if m.viewing {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1)

	if m.viewing {
		var b strings.Builder
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
		if item, ok := m.list.SelectedItem().(runItem); ok {
			b.WriteString(titleStyle.Render(item.run.Title))
			b.WriteString("\n\n")
		}
		b.WriteString(m.viewport.View())
		b.WriteString(helpStyle.Render("[j/k]scroll [esc]back [q]uit"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString(helpStyle.Render("[Enter]view [/]filter [q]uit"))
	return b.String()
}

// Run starts the history browser.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
