package kismetdb

import (
	"context"
	"io"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
)

// SliceSource yields a fixed list of rows in order. Tests use it in place of
// a capture database.
type SliceSource struct {
	rows []domain.Row
	next int
}

// NewSliceSource returns a source over rows in order.
func NewSliceSource(rows ...domain.Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next returns the next row, or io.EOF after the last one.
func (s *SliceSource) Next(ctx context.Context) (domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return domain.Row{}, err
	}
	if s.next >= len(s.rows) {
		return domain.Row{}, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

// Close is a no-op.
func (s *SliceSource) Close() error { return nil }
