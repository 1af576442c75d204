package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/student-spending/spendboard/internal/transaction"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ErrUnsupportedFormat is returned for files that are neither .csv nor .jsonl.
var ErrUnsupportedFormat = errors.New("unsupported file type: only .csv and .jsonl files are accepted")

// Parser turns raw file content into untyped records, one per logical row, in source order.
type Parser interface {
	Parse(r io.Reader) ([]transaction.Record, error)
}

// ParseError means a whole batch could not be turned into records.
// Line is the 1-based physical line of the problem, or 0 when it is not line-specific.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}

	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatFromName infers the input format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".jsonl":
		return FormatJSONL, nil
	}

	return "", &ParseError{Err: ErrUnsupportedFormat}
}
