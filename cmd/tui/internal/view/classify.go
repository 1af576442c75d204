package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/student-spending/spendboard/internal/backend"
)

type classifyState int

const (
	classifyStateConfirm classifyState = iota
	classifyStateRunning
	classifyStateResult
)

// ClassifyModel asks the service to categorize the user's uploaded transactions.
type ClassifyModel struct {
	CommonModel
	env *Env

	state  classifyState
	form   *huh.Form
	useLLM *bool

	result *backend.ClassifyResult
	err    error
}

func NewClassifyModel(env *Env) ClassifyModel {
	m := ClassifyModel{env: env, useLLM: new(bool)}
	m.form = m.buildForm()

	return m
}

func (m ClassifyModel) Title() string { return "Classify Transactions" }

func (m ClassifyModel) ShortHelp() string {
	if m.state == classifyStateResult {
		return "Esc: back"
	}

	return "Enter: confirm | Esc: back"
}

func (m ClassifyModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use the language model for merchants the rules cannot place?").
				Affirmative("Yes").
				Negative("No").
				Value(m.useLLM),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ClassifyModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ClassifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state != classifyStateRunning {
			return m, Back
		}

	case classifyResultMsg:
		m.state = classifyStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil
	}

	if m.state != classifyStateConfirm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = classifyStateRunning

	return m, m.classifyCmd()
}

func (m ClassifyModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case classifyStateConfirm:
		return style.Render(m.form.View())
	case classifyStateRunning:
		return style.Render("Classifying...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	lines := []string{
		successStyle.Render(fmt.Sprintf("Classified %d transactions.", m.result.TotalClassified)),
		"",
	}

	for _, cat := range slices.Sorted(maps.Keys(m.result.ByCategory)) {
		lines = append(lines, fmt.Sprintf("  %-16s %d", cat, m.result.ByCategory[cat]))
	}

	if m.result.NeedsReviewCount > 0 {
		lines = append(lines, "", faintStyle.Render(fmt.Sprintf("%d need review.", m.result.NeedsReviewCount)))
	}

	return style.Render(strings.Join(lines, "\n") + "\n\n(Esc to go back)")
}

type classifyResultMsg struct {
	result *backend.ClassifyResult
	err    error
}

func (m ClassifyModel) classifyCmd() tea.Cmd {
	env := m.env
	useLLM := *m.useLLM

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		result, err := env.Stats.Classify(ctx, env.Token(), useLLM)

		return classifyResultMsg{result: result, err: err}
	}
}
