package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kotobadev/kotoba-sync/internal/service"
)

type registerDoneMsg struct {
	username string
	err      error
}

// RegisterModel is the account-creation form. On success it returns the user
// to the menu with a [RegisterSuccessNotice] so they can log in with the new
// credentials.
type RegisterModel struct {
	ctx  context.Context
	auth service.AgentAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.AgentAuthService) *RegisterModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 20
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	repeatInput := textinput.New()
	repeatInput.Placeholder = "repeat password"
	repeatInput.CharLimit = 256
	repeatInput.Width = 40
	repeatInput.EchoMode = textinput.EchoPassword
	repeatInput.EchoCharacter = '*'

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{loginInput, passwordInput, repeatInput},
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(registerDoneMsg); ok {
		m.submitting = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}

		return m, func() tea.Msg {
			return NavigateTo{
				Page:    "menu",
				Payload: RegisterSuccessNotice{Username: done.username},
			}
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			repeat := m.inputs[2].Value()

			switch {
			case login == "" || pass == "":
				m.errMsg = "login and password are required"
				return m, nil
			case pass != repeat:
				m.errMsg = "passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(login, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Login           [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password        [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Repeat password [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(login, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		_, err := auth.Register(ctx, login, pass)
		return registerDoneMsg{username: login, err: err}
	}
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
