package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/student-spending/spendboard/internal/encoding"
	"github.com/student-spending/spendboard/internal/transaction"
)

// CSVParser reads comma-separated files whose first row names the transaction fields.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(r io.Reader) ([]transaction.Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("detect encoding: %w", err)}
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1 // short and long rows are left to the validator
	reader.LazyQuotes = true    // a stray quote stays in its cell
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []transaction.Record{}, nil
	}

	if err != nil {
		return nil, csvError(err)
	}

	cols := columnIndex(header)
	records := make([]transaction.Record, 0)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, csvError(err)
		}

		if blankRow(row) {
			continue
		}

		records = append(records, toRecord(cols, row))
	}

	return records, nil
}

// colIndex maps transaction field names to their column in the row.
type colIndex map[string]int

// columnIndex keeps only recognized field names; the first occurrence wins.
func columnIndex(header []string) colIndex {
	cols := make(colIndex)

	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if !slices.Contains(transaction.Fields, name) {
			continue
		}

		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	return cols
}

func toRecord(cols colIndex, row []string) transaction.Record {
	rec := make(transaction.Record, len(cols))

	for name, idx := range cols {
		if idx >= len(row) {
			continue
		}

		value := strings.TrimSpace(row[idx])

		if name == transaction.FieldAmountKRW {
			rec[name] = coerceAmount(value)
			continue
		}

		rec[name] = value
	}

	return rec
}

// coerceAmount turns a decimal-looking cell into a number and leaves anything else
// as a string for the validator to reject.
func coerceAmount(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}

	return d.InexactFloat64()
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: fmt.Errorf("read csv: %w", pe.Err)}
	}

	return &ParseError{Err: fmt.Errorf("read csv: %w", err)}
}
