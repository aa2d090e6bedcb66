package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/healthrisk/internal/model"
)

// ValidateSchema checks that the Parquet schema has a record_id column and at
// least one recognised health input column.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	if !columns["record_id"] {
		return fmt.Errorf("missing required column: record_id")
	}

	inputs := model.UserRecordColumns()
	for _, col := range inputs {
		if columns[col] {
			return nil
		}
	}
	return fmt.Errorf("no health input columns found; need at least one of: %s",
		strings.Join(inputs, ", "))
}
