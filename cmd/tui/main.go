package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/student-spending/spendboard/cmd/tui/internal/view"
	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/config"
	"github.com/student-spending/spendboard/internal/logger"
	"github.com/student-spending/spendboard/internal/session"
	"github.com/student-spending/spendboard/internal/stats"
)

type model struct {
	env *view.Env

	currentView View

	entryView    view.EntryModel
	importView   view.ImportModel
	classifyView view.ClassifyModel
	statsView    view.StatsModel
	loginView    view.LoginModel
}

type View int

const (
	ViewMenu     View = 0
	ViewEntry    View = 1
	ViewImport   View = 2
	ViewClassify View = 3
	ViewStats    View = 4
	ViewLogin    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "spendboard-tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}

	logger.InitText(logFile, cfg.App.LogLevel)

	s, err := session.Load(cfg.SessionPath)
	switch {
	case errors.Is(err, session.ErrNoSession):
		s = nil
	case err != nil:
		slog.Error("failed to load session", "error", err)
		s = nil
	case s.Expired(time.Now()):
		slog.Warn("stored session has expired", "user", s.User.Username)
		s = nil
	}

	client := backend.New(cfg.API.URL, backend.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}))
	statsSvc := stats.NewService(func(token string) stats.Backend {
		return client.ForToken(token)
	}, cfg.Stats.CacheTTL)

	env := view.NewEnv(client, statsSvc, cfg.SessionPath, s)

	return model{
		env:         env,
		currentView: ViewMenu,
		entryView:   view.NewEntryModel(env),
		importView:  view.NewImportModel(env),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewEntry
				m.entryView = view.NewEntryModel(m.env)

				return m, m.entryView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.env)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewClassify
				m.classifyView = view.NewClassifyModel(m.env)

				return m, m.classifyView.Init()
			case "4":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.env)

				return m, m.statsView.Init()
			case "5":
				m.currentView = ViewLogin
				m.loginView = view.NewLoginModel(m.env)

				return m, m.loginView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewClassify:
		var newModel tea.Model
		newModel, cmd = m.classifyView.Update(msg)
		m.classifyView = newModel.(view.ClassifyModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		user := "not logged in"
		if s := m.env.Session(); s != nil {
			user = "logged in as " + s.User.Username
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Spendboard\n" +
				lipgloss.NewStyle().Faint(true).Render(user) + "\n\n" +
				"1. Add Transactions\n" +
				"2. Import File\n" +
				"3. Classify Transactions\n" +
				"4. Spending Stats\n" +
				"5. Login / Logout\n\n" +
				"q. Quit",
		)
	case ViewEntry:
		return withHelp(m.entryView)
	case ViewImport:
		return withHelp(m.importView)
	case ViewClassify:
		return withHelp(m.classifyView)
	case ViewStats:
		return withHelp(m.statsView)
	case ViewLogin:
		return withHelp(m.loginView)
	}

	return "Unknown View"
}

func withHelp(v view.View) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Padding(1, 1, 0).Render(v.Title()),
		v.View(),
		lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(v.ShortHelp()),
	)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
