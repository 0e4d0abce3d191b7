// Package kismetdb reads capture rows from a Kismet log database.
//
// Kismet logs are SQLite files. A DSN starting with postgres:// or
// postgresql:// is opened with the Postgres driver instead, for captures that
// were imported into a shared database with the same "devices" table layout.
package kismetdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver
)

// SourceError reports a failure to open or query the capture database.
// It is the only fatal error class of a run.
type SourceError struct {
	Op  string // "open", "ping", "query", "scan", "read"
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("kismet db %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Selection chooses which device rows the source yields.
type Selection int

const (
	// SelectAll yields every device row.
	SelectAll Selection = iota
	// SelectAccessPoints yields rows whose declared type is domain.TypeAccessPoint.
	SelectAccessPoints
)

// Source streams rows of the devices table in the database's natural order.
// It implements pipeline.Source.
type Source struct {
	db     *sql.DB
	rows   *sql.Rows
	logger *slog.Logger
	read   int
}

// Open connects to the capture database at dsn and starts the selection query.
func Open(ctx context.Context, dsn string, sel Selection, logger *slog.Logger) (*Source, error) {
	driver := driverFor(dsn)
	if driver == "sqlite" {
		// database/sql would silently create an empty file.
		if _, err := os.Stat(dsn); err != nil {
			return nil, &SourceError{Op: "open", Err: err}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &SourceError{Op: "open", Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &SourceError{Op: "ping", Err: err}
	}

	query, args := selectQuery(driver, sel)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		_ = db.Close()
		return nil, &SourceError{Op: "query", Err: err}
	}

	logger.Debug("kismet db opened", "driver", driver, "selection", sel.String())
	return &Source{db: db, rows: rows, logger: logger}, nil
}

// Next returns the next row, or io.EOF after the last one.
func (s *Source) Next(ctx context.Context) (domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return domain.Row{}, err
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return domain.Row{}, &SourceError{Op: "read", Err: err}
		}
		return domain.Row{}, io.EOF
	}

	var (
		key, typ sql.NullString
		payload  []byte
	)
	if err := s.rows.Scan(&key, &typ, &payload); err != nil {
		return domain.Row{}, &SourceError{Op: "scan", Err: err}
	}
	s.read++
	return domain.Row{Key: key.String, Type: typ.String, Payload: payload}, nil
}

// Close releases the result set and the connection pool.
func (s *Source) Close() error {
	s.logger.Debug("kismet db closed", "rows_read", s.read)
	return errors.Join(s.rows.Close(), s.db.Close())
}

func (s Selection) String() string {
	switch s {
	case SelectAccessPoints:
		return "access_points"
	default:
		return "all"
	}
}

// IsPostgresDSN reports whether dsn names a Postgres database rather than a
// capture file.
func IsPostgresDSN(dsn string) bool {
	return driverFor(dsn) == "postgres"
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func selectQuery(driver string, sel Selection) (string, []any) {
	const base = "SELECT devkey, type, device FROM devices"
	if sel != SelectAccessPoints {
		return base, nil
	}
	placeholder := "?"
	if driver == "postgres" {
		placeholder = "$1"
	}
	return base + " WHERE type = " + placeholder, []any{domain.TypeAccessPoint}
}
