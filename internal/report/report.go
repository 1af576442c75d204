package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/transaction"
)

// Report is the outcome of validating, and optionally uploading, one batch.
type Report struct {
	File    string                    `json:"file,omitempty" yaml:"file,omitempty"`
	Summary transaction.Summary       `json:"summary" yaml:"summary"`
	Valid   []transaction.Transaction `json:"valid" yaml:"valid"`
	Invalid []transaction.InvalidRow  `json:"invalid" yaml:"invalid"`
	Upload  *backend.UploadResult     `json:"upload,omitempty" yaml:"upload,omitempty"`
}

func New(file string, result *transaction.ValidationResult, upload *backend.UploadResult) Report {
	return Report{
		File:    file,
		Summary: result.Summary(),
		Valid:   result.Valid,
		Invalid: result.Invalid,
		Upload:  upload,
	}
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}

	return nil
}

func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}

	return enc.Close()
}

// WriteTable renders the counts and every rejected row for a terminal.
func WriteTable(w io.Writer, r Report) error {
	var sb strings.Builder

	if r.File != "" {
		fmt.Fprintf(&sb, "%s\n", r.File)
	}

	fmt.Fprintf(&sb, "%d rows: %d valid, %d invalid\n", r.Summary.Total, r.Summary.Valid, r.Summary.Invalid)

	if len(r.Invalid) > 0 {
		rows := make([][]string, 0, len(r.Invalid))
		for _, inv := range r.Invalid {
			rows = append(rows, []string{fmt.Sprint(inv.Row), strings.Join(inv.Errors, "\n")})
		}

		sb.WriteString(newTable("Row", "Errors").Rows(rows...).String())
		sb.WriteString("\n")
	}

	if r.Upload != nil {
		fmt.Fprintf(&sb, "uploaded: %d accepted, %d rejected by server\n", r.Upload.Accepted, r.Upload.Rejected)

		if len(r.Upload.Reasons) > 0 {
			rows := make([][]string, 0, len(r.Upload.Reasons))
			for _, reason := range r.Upload.Reasons {
				rows = append(rows, []string{fmt.Sprint(reason.Row), reason.Reason})
			}

			sb.WriteString(newTable("Row", "Reason").Rows(rows...).String())
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
