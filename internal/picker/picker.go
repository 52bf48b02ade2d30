// Package picker is the interactive fuzzy selector behind `marks search`.
// Typing narrows the bookmark list by match score; enter confirms.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	urlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

const maxVisible = 15

type pickerModel struct {
	bookmarks []domain.Bookmark
	matches   []domain.Bookmark
	query     string
	cursor    int
	choice    *domain.Bookmark
}

func initialModel(bookmarks []domain.Bookmark) pickerModel {
	m := pickerModel{bookmarks: bookmarks}
	m.applyFilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.matches) > 0 {
			selected := m.matches[m.cursor]
			m.choice = &selected
		}
		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			m.applyFilter()
		}
		return m, nil

	case tea.KeySpace:
		m.query += " "
		m.applyFilter()
		return m, nil

	case tea.KeyRunes:
		m.query += string(keyMsg.Runes)
		m.applyFilter()
		return m, nil
	}

	return m, nil
}

func (m *pickerModel) applyFilter() {
	if strings.TrimSpace(m.query) == "" {
		m.matches = m.bookmarks
	} else {
		candidates := domain.RankBookmarks(m.query, m.bookmarks)
		m.matches = make([]domain.Bookmark, len(candidates))
		for i, c := range candidates {
			m.matches[i] = c.Bookmark
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render("Search bookmarks: "))
	b.WriteString(m.query)
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(helpStyle.Render("  no matching bookmarks"))
		b.WriteString("\n")
	}

	visible := m.matches
	offset := 0
	if m.cursor >= maxVisible {
		offset = m.cursor - maxVisible + 1
	}
	if len(visible) > offset {
		visible = visible[offset:]
	}
	if len(visible) > maxVisible {
		visible = visible[:maxVisible]
	}

	for i, bm := range visible {
		line := fmt.Sprintf("[%d] %-24s %s", bm.ID, truncate(displayLabel(bm), 24), urlStyle.Render(bm.URL))
		if offset+i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to filter · up/down to move · enter to select · esc to cancel"))
	b.WriteString("\n")

	return b.String()
}

func displayLabel(b domain.Bookmark) string {
	if b.Label == "" {
		return "No Label"
	}
	return b.Label
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// Run shows the picker and returns the selection, or nil when the user
// cancelled.
func Run(bookmarks []domain.Bookmark) (*domain.Bookmark, error) {
	p := tea.NewProgram(initialModel(bookmarks))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model type %T", final)
	}
	return m.choice, nil
}
