package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/report"
	"github.com/student-spending/spendboard/internal/transaction"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateUploading
	importStateResult
)

type ImportModel struct {
	CommonModel
	env *Env

	state      importState
	filePicker filepicker.Model
	invalid    table.Model

	path   string
	result *transaction.ValidationResult
	upload *backend.UploadResult

	status string
	err    error
}

func NewImportModel(env *Env) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".jsonl"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Row", Width: 5},
			{Title: "Errors", Width: 70},
		}),
		table.WithHeight(8),
	)

	return ImportModel{
		env:        env,
		filePicker: fp,
		invalid:    t,
	}
}

func (m ImportModel) Title() string { return "Import File" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "u: upload valid rows | p: add to pending | x: xlsx report | Esc: cancel"
	case importStateResult:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case ingestResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err

			return m, nil
		}

		m.result = msg.result
		m.state = importStatePreview
		m.status = ""
		m.refreshInvalid()

		return m, nil

	case uploadResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.upload = msg.result

		return m, nil

	case reportWrittenMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Report failed: %v", msg.err))
			return m, nil
		}

		m.status = successStyle.Render("Report written to " + msg.path)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateParsing

		return m, m.ingestCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.result = nil
		m.upload = nil
		m.status = ""
		m.err = nil

		return m, m.filePicker.Init()
	case importStateParsing, importStateUploading:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "u":
		if len(m.result.Valid) == 0 {
			m.status = errorStyle.Render("There are no valid transactions to upload.")
			return m, nil
		}

		m.state = importStateUploading

		return m, uploadCmd(m.env.Uploader, m.result.Valid)
	case "p":
		for _, tx := range m.result.Valid {
			m.env.Pending.Add(tx)
		}

		m.status = successStyle.Render(fmt.Sprintf("Added %d transactions to pending.", len(m.result.Valid)))

		return m, nil
	case "x":
		return m, writeReportCmd(m.path, *m.result)
	}

	var cmd tea.Cmd
	m.invalid, cmd = m.invalid.Update(msg)

	return m, cmd
}

func (m *ImportModel) refreshInvalid() {
	rows := make([]table.Row, 0, len(m.result.Invalid))
	for _, inv := range m.result.Invalid {
		rows = append(rows, table.Row{
			fmt.Sprint(inv.Row),
			strings.Join(inv.Errors, "; "),
		})
	}

	m.invalid.SetRows(rows)
	m.invalid.Focus()
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a .csv or .jsonl file:\n\n" + m.filePicker.View(),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Reading %s...", m.path))
	case importStatePreview:
		return m.viewPreview()
	case importStateUploading:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Uploading %d transactions...", len(m.result.Valid)),
		)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewPreview() string {
	sum := m.result.Summary()

	s := fmt.Sprintf("%s\n\n%d rows: %s, %s\n",
		accentStyle.Render(filepath.Base(m.path)),
		sum.Total,
		successStyle.Render(fmt.Sprintf("%d valid", sum.Valid)),
		errorStyle.Render(fmt.Sprintf("%d invalid", sum.Invalid)),
	)

	if sum.Invalid > 0 {
		s += "\n" + boxStyle.Render(m.invalid.View()) + "\n"
	}

	if m.status != "" {
		s += "\n" + m.status
	}

	return lipgloss.NewStyle().Padding(1).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		text := fmt.Sprintf("Error: %v", m.err)
		if m.result != nil {
			text = uploadErrorText(m.err)
		}

		return style.Render(errorStyle.Render(text) + "\n\n(Esc to go back)")
	}

	lines := []string{
		successStyle.Render(fmt.Sprintf("Uploaded: %d accepted, %d rejected.", m.upload.Accepted, m.upload.Rejected)),
	}
	lines = append(lines, rejectReasons(m.upload.Reasons)...)

	return style.Render(strings.Join(lines, "\n") + "\n\n(Esc to go back)")
}

// Messages

type ingestResultMsg struct {
	result *transaction.ValidationResult
	err    error
}

type reportWrittenMsg struct {
	path string
	err  error
}

func (m ImportModel) ingestCmd(path string) tea.Cmd {
	importer := m.env.Importer

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return ingestResultMsg{err: err}
		}
		defer f.Close()

		result, err := importer.Ingest(path, f)

		return ingestResultMsg{result: result, err: err}
	}
}

func writeReportCmd(path string, result transaction.ValidationResult) tea.Cmd {
	return func() tea.Msg {
		out := strings.TrimSuffix(path, filepath.Ext(path)) + ".report.xlsx"

		f, err := os.Create(out)
		if err != nil {
			return reportWrittenMsg{err: err}
		}

		err = report.WriteXLSX(f, report.New(filepath.Base(path), &result, nil))
		if cerr := f.Close(); err == nil {
			err = cerr
		}

		return reportWrittenMsg{path: out, err: err}
	}
}
