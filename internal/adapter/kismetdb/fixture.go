package kismetdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
)

// devicesSchema mirrors the columns of Kismet's devices table that the
// analyzer and its fixtures touch.
const devicesSchema = `CREATE TABLE devices (
	first_time INT,
	last_time INT,
	devkey TEXT,
	phyname TEXT,
	devmac TEXT,
	strongest_signal INT,
	type TEXT,
	device BLOB
)`

// FixtureDevice is one row written by WriteFixture.
type FixtureDevice struct {
	Key     string
	PhyName string
	MAC     string
	Type    string
	Payload []byte
}

// WriteFixture creates a new SQLite capture file at path holding devices.
// It refuses to touch an existing file so real captures are never modified.
func WriteFixture(ctx context.Context, path string, devices []FixtureDevice) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("write fixture: %s already exists", path)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("write fixture: %w", statErr)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	defer func() { err = errors.Join(err, db.Close()) }()

	if _, err := db.ExecContext(ctx, devicesSchema); err != nil {
		return fmt.Errorf("write fixture: create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	const insert = `INSERT INTO devices (first_time, last_time, devkey, phyname, devmac, strongest_signal, type, device)
		VALUES (0, 0, ?, ?, ?, 0, ?, ?)`
	for _, d := range devices {
		if _, err := tx.ExecContext(ctx, insert, d.Key, d.PhyName, d.MAC, d.Type, d.Payload); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write fixture: insert %s: %w", d.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write fixture: commit: %w", err)
	}
	return nil
}
