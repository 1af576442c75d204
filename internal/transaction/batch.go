package transaction

// InvalidRow is a rejected input row. Row is the 1-based position in the original input.
type InvalidRow struct {
	Row    int      `json:"row" yaml:"row"`
	Data   Record   `json:"data" yaml:"data"`
	Errors []string `json:"errors" yaml:"errors"`
}

// ValidationResult partitions a batch into accepted transactions and rejected rows.
// Both sequences keep input order and every input row lands in exactly one of them.
type ValidationResult struct {
	Valid   []Transaction `json:"valid" yaml:"valid"`
	Invalid []InvalidRow  `json:"invalid" yaml:"invalid"`
}

// Summary holds the counts of a ValidationResult.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
}

func (r ValidationResult) Summary() Summary {
	return Summary{
		Total:   len(r.Valid) + len(r.Invalid),
		Valid:   len(r.Valid),
		Invalid: len(r.Invalid),
	}
}

// ValidateBatch partitions records with the package default Validator.
func ValidateBatch(records []Record) ValidationResult {
	return defaultValidator().ValidateBatch(records)
}

// ValidateBatch validates each record independently and in order.
func (v *Validator) ValidateBatch(records []Record) ValidationResult {
	result := ValidationResult{
		Valid:   make([]Transaction, 0, len(records)),
		Invalid: make([]InvalidRow, 0),
	}

	for i, rec := range records {
		switch o := v.Validate(rec).(type) {
		case Valid:
			result.Valid = append(result.Valid, o.Transaction)
		case Invalid:
			result.Invalid = append(result.Invalid, InvalidRow{
				Row:    i + 1,
				Data:   rec,
				Errors: o.Errors,
			})
		}
	}

	return result
}
