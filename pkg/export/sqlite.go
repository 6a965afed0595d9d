package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS export_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS series (
	idx   INTEGER PRIMARY KEY,
	label TEXT NOT NULL,
	value REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS series_extra (
	idx   INTEGER NOT NULL REFERENCES series(idx),
	key   TEXT NOT NULL,
	value REAL NOT NULL,
	PRIMARY KEY (idx, key)
);
CREATE TABLE IF NOT EXISTS variables (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT,
	unit        TEXT,
	min         REAL NOT NULL,
	max         REAL NOT NULL,
	value       REAL NOT NULL,
	is_active   INTEGER NOT NULL,
	in_range    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS data_point (
	time     TEXT NOT NULL,
	variable TEXT NOT NULL,
	key      TEXT NOT NULL,
	value    REAL NOT NULL
);
`

// SaveSQLite writes the report into a fresh SQLite database at path.
func SaveSQLite(ctx context.Context, path string, r Report) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing db: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertMeta(ctx, tx, r); err != nil {
		return err
	}
	if err := insertSeries(ctx, tx, r); err != nil {
		return err
	}
	if err := insertVariables(ctx, tx, r); err != nil {
		return err
	}
	if err := insertPoint(ctx, tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMeta(ctx context.Context, tx *sql.Tx, r Report) error {
	meta := map[string]string{
		"title":        r.Title,
		"series_name":  r.SeriesName,
		"generated_at": r.GeneratedAt.Format(time.RFC3339),
		"mean":         fmt.Sprintf("%g", r.Summary.Mean),
		"target":       fmt.Sprintf("%g", r.Summary.Target),
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO export_meta (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare meta: %w", err)
	}
	defer stmt.Close()
	for k, v := range meta {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}
	return nil
}

func insertSeries(ctx context.Context, tx *sql.Tx, r Report) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO series (idx, label, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare series: %w", err)
	}
	defer stmt.Close()
	extra, err := tx.PrepareContext(ctx, `INSERT INTO series_extra (idx, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare series_extra: %w", err)
	}
	defer extra.Close()

	for i, p := range r.Series {
		if _, err := stmt.ExecContext(ctx, i, p.Label, p.Value); err != nil {
			return fmt.Errorf("insert series %s: %w", p.Label, err)
		}
		for k, v := range p.Extra {
			if _, err := extra.ExecContext(ctx, i, k, v); err != nil {
				return fmt.Errorf("insert series_extra %s/%s: %w", p.Label, k, err)
			}
		}
	}
	return nil
}

func insertVariables(ctx context.Context, tx *sql.Tx, r Report) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO variables (id, name, description, unit, min, max, value, is_active, in_range)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare variables: %w", err)
	}
	defer stmt.Close()

	for _, v := range r.Variables {
		if _, err := stmt.ExecContext(ctx, v.ID, v.Name, v.Description, v.Unit,
			v.Min, v.Max, v.Value, boolInt(v.IsActive), boolInt(v.InRange())); err != nil {
			return fmt.Errorf("insert variable %s: %w", v.ID, err)
		}
	}
	return nil
}

func insertPoint(ctx context.Context, tx *sql.Tx, r Report) error {
	if r.Point == nil {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO data_point (time, variable, key, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare data_point: %w", err)
	}
	defer stmt.Close()
	for k, v := range r.Point.Values {
		if _, err := stmt.ExecContext(ctx, r.Point.Time, r.Point.Variable, k, v); err != nil {
			return fmt.Errorf("insert data_point %s: %w", k, err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
