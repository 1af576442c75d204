package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/stats"
)

const chartWidth = 40

var ranges = []backend.Range{backend.RangeDay, backend.RangeWeek, backend.RangeMonth}

type statsState int

const (
	statsStatePick statsState = iota
	statsStateLoading
	statsStateChart
)

// StatsModel shows spending by category for a chosen period.
type StatsModel struct {
	CommonModel
	env *Env

	state    statsState
	picker   TimeframePicker
	query    stats.Query
	rangeIdx int

	result *backend.AggregateResult
	err    error
}

func NewStatsModel(env *Env) StatsModel {
	return StatsModel{
		env:      env,
		picker:   NewTimeframePicker(),
		rangeIdx: len(ranges) - 1,
	}
}

func (m StatsModel) Title() string { return "Spending Stats" }

func (m StatsModel) ShortHelp() string {
	if m.state == statsStateChart {
		return "r: bucket size | t: timeframe | Esc: back"
	}

	return "Enter: select | Esc: back"
}

func (m StatsModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.query = stats.Query{
			Start: msg.Start.Format(dateLayout),
			End:   msg.End.Format(dateLayout),
			Range: ranges[m.rangeIdx],
		}

		return m.load()

	case aggregateResultMsg:
		m.state = statsStateChart
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.state == statsStatePick {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m StatsModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case statsStatePick:
		if msg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case statsStateChart:
		switch msg.String() {
		case "esc":
			return m, Back
		case "t":
			m.state = statsStatePick
			m.picker.Reset()

			return m, nil
		case "r":
			m.rangeIdx = (m.rangeIdx + 1) % len(ranges)
			m.query.Range = ranges[m.rangeIdx]

			return m.load()
		}
	}

	return m, nil
}

func (m StatsModel) load() (tea.Model, tea.Cmd) {
	m.state = statsStateLoading
	env := m.env
	q := m.query

	return m, func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		result, err := env.Stats.Aggregate(ctx, env.Token(), q)

		return aggregateResultMsg{result: result, err: err}
	}
}

func (m StatsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case statsStatePick:
		return style.Render(m.picker.View())
	case statsStateLoading:
		return style.Render("Loading...")
	}

	header := fmt.Sprintf("%s to %s, by %s",
		m.query.Start, m.query.End, accentStyle.Render(string(m.query.Range)))

	if m.err != nil {
		return style.Render(header + "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return style.Render(header + "\n\n" + RenderStats(m.result, chartWidth))
}

// RenderStats draws category bars and the top merchants of an aggregate.
func RenderStats(result *backend.AggregateResult, width int) string {
	bars := stats.Bars(result.ByCategory, width)
	if len(bars) == 0 {
		return faintStyle.Render("No spending in this period.")
	}

	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Category))
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Total %s\n\n", accentStyle.Render(FormatAmount(result.TotalAmount)))

	for _, b := range bars {
		fmt.Fprintf(&sb, "%s %s %s %s\n",
			lipgloss.NewStyle().Width(labelWidth).Render(b.Category),
			barStyle.Render(strings.Repeat("█", b.Width)),
			FormatAmount(b.Amount),
			faintStyle.Render(fmt.Sprintf("%.1f%%", b.Share*100)),
		)
	}

	if len(result.TopMerchants) > 0 {
		sb.WriteString("\nTop merchants\n")

		for i, mt := range result.TopMerchants {
			fmt.Fprintf(&sb, "%2d. %s %s\n", i+1, mt.Merchant, FormatAmount(mt.Amount))
		}
	}

	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

type aggregateResultMsg struct {
	result *backend.AggregateResult
	err    error
}
