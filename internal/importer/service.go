package importer

import (
	"io"

	"github.com/student-spending/spendboard/internal/transaction"
)

type Service struct {
	parsers   map[Format]Parser
	validator *transaction.Validator
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatCSV:   NewCSVParser(),
			FormatJSONL: NewJSONLParser(),
		},
		validator: transaction.NewValidator(),
	}
}

// Parse picks a parser from the file name and returns the raw records.
func (s *Service) Parse(name string, r io.Reader) ([]transaction.Record, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}

	return s.parsers[format].Parse(r)
}

// Ingest parses a file and validates every record. Syntax errors fail the whole
// batch; schema errors only mark the offending row invalid.
func (s *Service) Ingest(name string, r io.Reader) (*transaction.ValidationResult, error) {
	records, err := s.Parse(name, r)
	if err != nil {
		return nil, err
	}

	result := s.ValidateBatch(records)

	return &result, nil
}

// ValidateBatch partitions records that did not come from a file, such as a JSON request body.
func (s *Service) ValidateBatch(records []transaction.Record) transaction.ValidationResult {
	return s.validator.ValidateBatch(records)
}

// Validate checks a single record, such as one typed into a form.
func (s *Service) Validate(rec transaction.Record) transaction.Outcome {
	return s.validator.Validate(rec)
}
