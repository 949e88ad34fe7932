package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Houeta/address-mapper/internal/models"
)

// RequiredColumns lists the header columns every input file must carry.
// Column order does not matter and extra columns are ignored, so a previously
// exported report can be re-imported as input.
var RequiredColumns = []string{"account_id", "street", "city", "state", "zipcode"}

// SchemaError reports required columns that are missing from the input header.
// It is fatal: no rows are parsed and no geocoding is attempted.
type SchemaError struct {
	Missing []string // Missing holds the absent column names, in RequiredColumns order.
}

func (e *SchemaError) Error() string {
	return "input is missing required columns: " + strings.Join(e.Missing, ", ")
}

// Parse reads CSV input and returns one AddressRecord per data row, in input
// order. Rows whose address fields are all empty are still emitted; they are
// marked unresolvable later by the pipeline, not filtered here. Parsing has no
// side effects beyond reading, so parsing the same input twice yields
// identical sequences.
func Parse(r io.Reader) ([]models.AddressRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as empty
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	field := func(row []string, col string) string {
		idx := index[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []models.AddressRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		records = append(records, models.AddressRecord{
			AccountID: field(row, "account_id"),
			Street:    field(row, "street"),
			City:      field(row, "city"),
			State:     field(row, "state"),
			Zipcode:   field(row, "zipcode"),
		})
	}

	return records, nil
}
