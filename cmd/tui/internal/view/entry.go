package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/transaction"
	"github.com/student-spending/spendboard/internal/upload"
)

type entryState int

const (
	entryStateList entryState = iota
	entryStateForm
	entryStateUploading
)

// entryForm holds the raw form bindings; every value is still text.
type entryForm struct {
	Date        string
	Time        string
	Merchant    string
	Memo        string
	Amount      string
	PaymentType string
	City        string
	Channel     string
}

// record turns the form into an untyped record. A numeric amount becomes a number,
// anything else is left as text so validation reports it.
func (f entryForm) record() transaction.Record {
	rec := transaction.Record{
		transaction.FieldDate:        strings.TrimSpace(f.Date),
		transaction.FieldTime:        strings.TrimSpace(f.Time),
		transaction.FieldMerchant:    strings.TrimSpace(f.Merchant),
		transaction.FieldPaymentType: f.PaymentType,
		transaction.FieldCity:        strings.TrimSpace(f.City),
		transaction.FieldChannel:     f.Channel,
	}

	if memo := strings.TrimSpace(f.Memo); memo != "" {
		rec[transaction.FieldMemo] = memo
	}

	amount := strings.ReplaceAll(strings.TrimSpace(f.Amount), ",", "")
	if d, err := decimal.NewFromString(amount); err == nil {
		rec[transaction.FieldAmountKRW] = d.InexactFloat64()
	} else {
		rec[transaction.FieldAmountKRW] = amount
	}

	return rec
}

// EntryModel collects transactions typed in by hand and uploads them as one batch.
type EntryModel struct {
	CommonModel
	env *Env

	state  entryState
	table  table.Model
	form   *huh.Form
	values *entryForm
	now    func() time.Time

	errs   []string
	result *backend.UploadResult
	status string
	err    error
}

func NewEntryModel(env *Env) EntryModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Time", Width: 5},
			{Title: "Merchant", Width: 24},
			{Title: "Amount", Width: 14},
			{Title: "Payment", Width: 14},
			{Title: "City", Width: 10},
			{Title: "Channel", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := EntryModel{
		env:   env,
		table: t,
		now:   time.Now,
	}
	m.refreshTable()

	return m
}

func (m EntryModel) Title() string { return "Add Transactions" }

func (m EntryModel) ShortHelp() string {
	switch m.state {
	case entryStateForm:
		return "Navigate form | Esc: cancel"
	case entryStateUploading:
		return "Uploading..."
	}

	return "a: add | d: delete | u: upload | Esc: back"
}

func (m EntryModel) Init() tea.Cmd {
	return nil
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadResultMsg:
		m.state = entryStateList
		m.table.Focus()

		if msg.err != nil {
			m.err = msg.err
			m.result = nil
			m.status = ""

			return m, nil
		}

		m.err = nil
		m.result = msg.result

		if msg.result.Accepted > 0 {
			m.env.Pending.Clear()
		}

		m.status = fmt.Sprintf("Server accepted %d, rejected %d.", msg.result.Accepted, msg.result.Rejected)
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-16))

		return m, nil
	}

	switch m.state {
	case entryStateList:
		return m.updateList(msg)
	case entryStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m EntryModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "a":
		return m.openForm()
	case "d":
		items := m.env.Pending.Items()
		if idx := m.table.Cursor(); idx >= 0 && idx < len(items) {
			m.env.Pending.Remove(items[idx].ID)
			m.refreshTable()
		}

		return m, nil
	case "u":
		txs := m.env.Pending.Transactions()
		if len(txs) == 0 {
			m.err = upload.ErrEmptyBatch
			return m, nil
		}

		m.state = entryStateUploading
		m.err = nil
		m.status = fmt.Sprintf("Uploading %d transactions...", len(txs))
		m.table.Blur()

		return m, uploadCmd(m.env.Uploader, txs)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EntryModel) openForm() (tea.Model, tea.Cmd) {
	now := m.now()
	m.values = &entryForm{
		Date:        now.Format(dateLayout),
		Time:        now.Format("15:04"),
		PaymentType: string(transaction.PaymentCreditCard),
		Channel:     string(transaction.ChannelOffline),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&m.values.Date),
			huh.NewInput().Title("Time").Placeholder("HH:MM").Value(&m.values.Time),
			huh.NewInput().Title("Merchant").Value(&m.values.Merchant),
			huh.NewInput().Title("Memo").Value(&m.values.Memo),
			huh.NewInput().Title("Amount (KRW)").Value(&m.values.Amount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Payment type").
				Options(stringOptions(transaction.PaymentTypes)...).
				Value(&m.values.PaymentType),
			huh.NewInput().Title("City").Value(&m.values.City),
			huh.NewSelect[string]().
				Title("Channel").
				Options(stringOptions(transaction.Channels)...).
				Value(&m.values.Channel),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = entryStateForm
	m.errs = nil
	m.table.Blur()

	return m, m.form.Init()
}

func (m EntryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = entryStateList
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = entryStateList
	m.form = nil
	m.table.Focus()

	switch o := m.env.Importer.Validate(m.values.record()).(type) {
	case transaction.Valid:
		m.env.Pending.Add(o.Transaction)
		m.errs = nil
		m.status = fmt.Sprintf("Added %s %s.", o.Transaction.Merchant, FormatAmount(o.Transaction.AmountKRW))
		m.refreshTable()
	case transaction.Invalid:
		m.errs = o.Errors
		m.status = ""
	}

	return m, nil
}

func (m *EntryModel) refreshTable() {
	items := m.env.Pending.Items()
	rows := make([]table.Row, 0, len(items))

	for _, item := range items {
		tx := item.Transaction
		rows = append(rows, table.Row{
			tx.Date,
			tx.Time,
			tx.Merchant,
			FormatAmount(tx.AmountKRW),
			string(tx.PaymentType),
			tx.City,
			string(tx.Channel),
		})
	}

	m.table.SetRows(rows)
}

func (m EntryModel) View() string {
	header := fmt.Sprintf("Pending: %d transactions, %s",
		m.env.Pending.Len(),
		accentStyle.Render(FormatAmount(m.env.Pending.Total().InexactFloat64())),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(m.table.View()),
	)

	if m.state == entryStateForm && m.form != nil {
		panel := boxStyle.Width(54).Render("New Transaction\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	var notes []string

	if len(m.errs) > 0 {
		notes = append(notes, errorStyle.Render("Not added:"))
		for _, e := range m.errs {
			notes = append(notes, errorStyle.Render("  "+e))
		}
	}

	if m.status != "" {
		notes = append(notes, successStyle.Render(m.status))
	}

	if m.result != nil {
		notes = append(notes, rejectReasons(m.result.Reasons)...)
	}

	if m.err != nil {
		notes = append(notes, errorStyle.Render(uploadErrorText(m.err)))
	}

	if len(notes) > 0 {
		content += "\n\n" + strings.Join(notes, "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type uploadResultMsg struct {
	result *backend.UploadResult
	err    error
}

func uploadCmd(u *upload.Uploader, txs []transaction.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		result, err := u.Submit(ctx, txs)

		return uploadResultMsg{result: result, err: err}
	}
}

func uploadErrorText(err error) string {
	if errors.Is(err, upload.ErrInFlight) {
		return "An upload is already in progress."
	}

	return fmt.Sprintf("Upload failed: %v", err)
}

func rejectReasons(reasons []backend.RejectReason) []string {
	lines := make([]string, 0, len(reasons))
	for _, r := range reasons {
		lines = append(lines, faintStyle.Render(fmt.Sprintf("  row %d: %s", r.Row, r.Reason)))
	}

	return lines
}

func stringOptions[T ~string](values []T) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(string(v), string(v)))
	}

	return opts
}
