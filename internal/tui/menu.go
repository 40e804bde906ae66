package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type MenuModel struct {
	items  []string
	idx    int
	status string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []string{"Log in", "Register"},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(RegisterSuccessNotice); ok {
		if notice.Username != "" {
			m.status = "Account " + notice.Username + " registered"
		} else {
			m.status = "Registration succeeded"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		if m.idx == 0 {
			return m, func() tea.Msg { return NavigateTo{Page: "login"} }
		}
		return m, func() tea.Msg { return NavigateTo{Page: "register"} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(cursor)
		b.WriteString(" ")
		b.WriteString(item)
		b.WriteString("\n")
	}

	return renderPage("KOTOBA SYNC", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move")
}
