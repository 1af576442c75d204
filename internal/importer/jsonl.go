package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	enc "github.com/student-spending/spendboard/internal/encoding"
	"github.com/student-spending/spendboard/internal/transaction"
)

const maxJSONLLine = 1 << 20

var (
	errNotObject    = errors.New("line is not a JSON object")
	errTrailingData = errors.New("unexpected data after JSON value")
)

// JSONLParser reads newline-delimited JSON, one transaction object per line.
type JSONLParser struct{}

func NewJSONLParser() *JSONLParser {
	return &JSONLParser{}
}

func (p *JSONLParser) Parse(r io.Reader) ([]transaction.Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("detect encoding: %w", err)}
	}

	scanner := bufio.NewScanner(utf8r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)

	records := make([]transaction.Record, 0)
	line := 0

	for scanner.Scan() {
		line++

		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		obj, err := decodeObject(text)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}

		records = append(records, obj)
	}

	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: line + 1, Err: fmt.Errorf("read jsonl: %w", err)}
	}

	return records, nil
}

// decodeObject keeps numbers as json.Number so range checks happen per row in
// the validator instead of failing the whole file.
func decodeObject(text []byte) (transaction.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, errNotObject
	}

	return obj, nil
}
