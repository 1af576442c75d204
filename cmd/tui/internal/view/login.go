package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/session"
)

type loginState int

const (
	loginStateForm loginState = iota
	loginStateSubmitting
	loginStateDone
)

// LoginModel signs the user in and stores the session, or signs out when already logged in.
type LoginModel struct {
	CommonModel
	env *Env

	state loginState
	form  *huh.Form
	creds *backend.Credentials

	status string
	err    error
}

func NewLoginModel(env *Env) LoginModel {
	m := LoginModel{env: env, creds: &backend.Credentials{}}

	if s := env.Session(); s != nil {
		m.state = loginStateDone
		m.status = "Logged in as " + s.User.Username + "."

		return m
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.creds.Username).
				Validate(notBlank("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.Password).
				Validate(notBlank("password")),
		),
	).WithWidth(45).WithShowHelp(false)

	return m
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}

		return nil
	}
}

func (m LoginModel) Title() string { return "Login" }

func (m LoginModel) ShortHelp() string {
	if m.state == loginStateDone && m.env.Session() != nil {
		return "o: log out | Esc: back"
	}

	return "Enter: submit | Esc: back"
}

func (m LoginModel) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}

	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state != loginStateSubmitting {
			return m, Back
		}

		if m.state == loginStateDone && msg.String() == "o" && m.env.Session() != nil {
			return m.logout()
		}

	case loginResultMsg:
		m.state = loginStateDone
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.env.SetSession(msg.session)
		m.status = "Logged in as " + msg.session.User.Username + "."

		return m, nil
	}

	if m.state != loginStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = loginStateSubmitting

	return m, m.loginCmd()
}

func (m LoginModel) logout() (tea.Model, tea.Cmd) {
	token := m.env.Token()

	if err := session.Clear(m.env.SessionPath); err != nil {
		m.err = err
		return m, nil
	}

	m.env.Stats.Invalidate(token)
	m.env.SetSession(nil)
	m.status = "Logged out."

	return m, nil
}

func (m LoginModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case loginStateForm:
		return style.Render(m.form.View())
	case loginStateSubmitting:
		return style.Render("Signing in...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
}

type loginResultMsg struct {
	session *session.Session
	err     error
}

func (m LoginModel) loginCmd() tea.Cmd {
	env := m.env
	creds := backend.Credentials{
		Username: strings.TrimSpace(m.creds.Username),
		Password: m.creds.Password,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		token, err := env.base.Login(ctx, creds)
		if err != nil {
			return loginResultMsg{err: err}
		}

		s := &session.Session{Token: token.AccessToken, User: token.User}
		if err := session.Save(env.SessionPath, *s); err != nil {
			return loginResultMsg{err: fmt.Errorf("saving session: %w", err)}
		}

		return loginResultMsg{session: s}
	}
}
