package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/student-spending/spendboard/internal/money"
)

const apiTimeout = 30 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	boxStyle     = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// FormatAmount formats a won amount for display.
func FormatAmount(krw float64) string {
	return money.KRW(krw)
}

// APICtx returns a context with a standard timeout for calls to the spending service.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
