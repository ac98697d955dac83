// Package sqlite archives published weather snapshots in a local SQLite
// database so history survives restarts without an external store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	city_key     TEXT    NOT NULL,
	generated_at TEXT    NOT NULL,
	condition    TEXT    NOT NULL,
	temperature  REAL    NOT NULL,
	payload      TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_city_time ON snapshots (city_key, generated_at);
`

// Archive persists snapshot batches. It implements publisher.BatchLoader.
type Archive struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// LoadBatch inserts all snapshots in a single transaction; a failure rolls
// the whole batch back.
func (a *Archive) LoadBatch(ctx context.Context, snaps []domain.WeatherSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshots (city_key, generated_at, condition, temperature, payload)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snaps {
		payload, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("serialize snapshot for %s: %w", snap.CityKey, err)
		}
		_, err = stmt.ExecContext(ctx,
			snap.CityKey,
			snap.Timestamp.UTC().Format(time.RFC3339),
			string(snap.Condition),
			snap.Temperature,
			string(payload),
		)
		if err != nil {
			return fmt.Errorf("insert snapshot for %s: %w", snap.CityKey, err)
		}
	}

	return tx.Commit()
}

// SnapshotCount returns the number of archived snapshots for a city, or for
// all cities when cityKey is empty.
func (a *Archive) SnapshotCount(ctx context.Context, cityKey string) (int, error) {
	var (
		count int
		err   error
	)
	if cityKey == "" {
		err = a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&count)
	} else {
		err = a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE city_key = ?`, cityKey).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return count, nil
}

// Recent returns up to limit most recent snapshots for a city, newest first.
func (a *Archive) Recent(ctx context.Context, cityKey string, limit int) ([]domain.WeatherSnapshot, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT payload FROM snapshots WHERE city_key = ? ORDER BY generated_at DESC, id DESC LIMIT ?`,
		cityKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.WeatherSnapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		var snap domain.WeatherSnapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot payload: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (a *Archive) Close() error {
	return a.db.Close()
}
