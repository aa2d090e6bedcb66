package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/healthrisk/internal/model"
)

// WriteParquet writes rows using the ReportRow schema.
func WriteParquet(w io.Writer, rows []*model.ReportRow) error {
	pw := parquet.NewGenericWriter[model.ReportRow](w)
	buf := make([]model.ReportRow, 0, len(rows))
	for _, r := range rows {
		buf = append(buf, *r)
	}
	if _, err := pw.Write(buf); err != nil {
		pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
