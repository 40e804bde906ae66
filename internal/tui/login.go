package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kotobadev/kotoba-sync/internal/service"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two
// text inputs (login and password) and dispatches an async login command on
// form submission. On success a [LoginResult] message is produced and handled
// by [RootModel] to finish the authentication flow.
type LoginModel struct {
	ctx  context.Context
	auth service.AgentAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with pre-configured login and password
// inputs. The login field receives focus immediately; the password field uses
// masked echo.
func NewLoginModel(ctx context.Context, auth service.AgentAuthService) *LoginModel {
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

	return &LoginModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{loginInput, passwordInput},
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = result.Err.Error()
		}
		return m, nil
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
			if login == "" || pass == "" {
				m.errMsg = "login and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(login, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Login    [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(login, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		userID, err := auth.Login(ctx, login, pass)

		return LoginResult{
			Err:      err,
			Username: login,
			UserID:   userID,
		}
	}
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
