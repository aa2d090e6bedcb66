package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/healthrisk/internal/model"
)

// ChannelSource implements pgx.CopyFromSource over a channel of report rows,
// so COPY consumes rows as the producer emits them.
type ChannelSource struct {
	ch      <-chan *model.ReportRow
	current *model.ReportRow
	n       int64
}

// NewChannelSource creates a CopyFromSource backed by ch.
func NewChannelSource(ch <-chan *model.ReportRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	s.n++
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err always returns nil; producer errors are reported out of band.
func (s *ChannelSource) Err() error {
	return nil
}

// Count returns the number of rows handed to COPY so far.
func (s *ChannelSource) Count() int64 {
	return s.n
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
