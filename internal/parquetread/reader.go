package parquetread

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/healthrisk/internal/model"
)

// Entry is one decoded input row.
type Entry struct {
	Row    int64 // 1-based position in the file
	ID     string
	Record model.UserRecord
}

// Reader decodes batch user records from a Parquet file.
type Reader struct {
	file *os.File
	rows *parquet.GenericReader[model.UserRecordRow]
	buf  []model.UserRecordRow
	read int64
}

// Open opens a Parquet file of UserRecordRow rows.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	return &Reader{file: f, rows: parquet.NewGenericReader[model.UserRecordRow](pf)}, nil
}

// NumRows returns the total number of rows in the file.
func (r *Reader) NumRows() int64 { return r.rows.NumRows() }

// Schema returns the file schema.
func (r *Reader) Schema() *parquet.Schema { return r.rows.Schema() }

// Decoded returns how many rows Next has produced so far.
func (r *Reader) Decoded() int64 { return r.read }

// Next decodes up to len(dst) rows into dst. Rows with an empty record_id
// are named "row-N". It returns io.EOF once the file is exhausted.
func (r *Reader) Next(dst []Entry) (int, error) {
	if cap(r.buf) < len(dst) {
		r.buf = make([]model.UserRecordRow, len(dst))
	}
	buf := r.buf[:len(dst)]
	clear(buf)

	n, err := r.rows.Read(buf)
	for i := 0; i < n; i++ {
		r.read++
		id := buf[i].RecordID
		if id == "" {
			id = fmt.Sprintf("row-%d", r.read)
		}
		dst[i] = Entry{Row: r.read, ID: id, Record: buf[i].Record()}
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet at row %d: %w", r.read, err)
	}
	return n, err
}

// Close releases the reader and the underlying file.
func (r *Reader) Close() error {
	return errors.Join(r.rows.Close(), r.file.Close())
}
