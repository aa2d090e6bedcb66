package parquetread

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/healthrisk/internal/model"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestReader_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.parquet")
	in := []model.UserRecordRow{
		{RecordID: "a", Age: f64(45), Gender: str("Male")},
		{RecordID: "b", Glucose: f64(140)},
		{},
	}
	if err := parquet.WriteFile(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if err := ValidateSchema(r.Schema()); err != nil {
		t.Fatalf("ValidateSchema: %v", err)
	}
	if r.NumRows() != 3 {
		t.Fatalf("NumRows = %d", r.NumRows())
	}

	buf := make([]Entry, 8)
	n, err := r.Next(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("Read: %v", err)
	}
	if n != 3 {
		t.Fatalf("read %d rows", n)
	}

	rec := buf[0].Record
	if rec["age"] != 45.0 || rec["gender"] != "Male" || len(rec) != 2 {
		t.Errorf("row a = %v", rec)
	}
	if rec := buf[1].Record; rec["glucose"] != 140.0 || len(rec) != 1 {
		t.Errorf("row b = %v", rec)
	}
	if e := buf[2]; len(e.Record) != 0 || e.ID != "row-3" || e.Row != 3 {
		t.Errorf("row 3 = %+v", e)
	}
	if r.Decoded() != 3 {
		t.Errorf("Decoded = %d", r.Decoded())
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateSchema(t *testing.T) {
	type onlyID struct {
		RecordID string `parquet:"record_id"`
	}
	type noID struct {
		Age float64 `parquet:"age"`
	}
	type ok struct {
		RecordID string  `parquet:"record_id"`
		BMI      float64 `parquet:"bmi"`
	}

	if err := ValidateSchema(parquet.SchemaOf(onlyID{})); err == nil || !strings.Contains(err.Error(), "no health input columns") {
		t.Errorf("onlyID: %v", err)
	}
	if err := ValidateSchema(parquet.SchemaOf(noID{})); err == nil || !strings.Contains(err.Error(), "record_id") {
		t.Errorf("noID: %v", err)
	}
	if err := ValidateSchema(parquet.SchemaOf(ok{})); err != nil {
		t.Errorf("ok: %v", err)
	}
}
