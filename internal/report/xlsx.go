package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/student-spending/spendboard/internal/transaction"
)

const (
	SheetInvalid = "Invalid"
	SheetValid   = "Valid"
)

// WriteXLSX writes a workbook with the rejected rows, laid out for fixing and
// re-importing, and the accepted transactions.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetInvalid); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetValid); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	header := []any{"row", "errors"}
	for _, field := range transaction.Fields {
		header = append(header, field)
	}

	if err := f.SetSheetRow(SheetInvalid, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, inv := range r.Invalid {
		row := []any{inv.Row, strings.Join(inv.Errors, "; ")}
		for _, field := range transaction.Fields {
			row = append(row, inv.Data[field])
		}

		if err := writeRow(f, SheetInvalid, i+2, row); err != nil {
			return err
		}
	}

	validHeader := make([]any, 0, len(transaction.Fields))
	for _, field := range transaction.Fields {
		validHeader = append(validHeader, field)
	}

	if err := f.SetSheetRow(SheetValid, "A1", &validHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range r.Valid {
		rec := tx.ToRecord()

		row := make([]any, 0, len(transaction.Fields))
		for _, field := range transaction.Fields {
			row = append(row, rec[field])
		}

		if err := writeRow(f, SheetValid, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, n int, row []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", n, err)
	}

	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing row %d: %w", n, err)
	}

	return nil
}
