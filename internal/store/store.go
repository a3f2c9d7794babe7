// Package store persists dungeon runs and item records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/samdwyer/delvecore/internal/item"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// RunRecord is the persisted state of one dungeon run.
type RunRecord struct {
	ID              string
	MaxFloor        int
	Gold            int
	GoldEarned      int
	ItemsFound      int
	EnemiesDefeated int
	Active          bool
	StartedAt       time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	max_floor        INTEGER NOT NULL,
	gold             INTEGER NOT NULL,
	gold_earned      INTEGER NOT NULL,
	items_found      INTEGER NOT NULL,
	enemies_defeated INTEGER NOT NULL,
	active           INTEGER NOT NULL,
	started_at       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	run_id        TEXT NOT NULL,
	id            TEXT NOT NULL,
	name          TEXT NOT NULL,
	rarity        TEXT NOT NULL,
	level         INTEGER NOT NULL,
	slot          TEXT NOT NULL,
	type          TEXT NOT NULL,
	stats         TEXT NOT NULL,
	enchant_level INTEGER NOT NULL,
	set_id        TEXT NOT NULL DEFAULT '',
	gold_value    INTEGER NOT NULL,
	icon          TEXT NOT NULL DEFAULT '',
	position      INTEGER NOT NULL,
	PRIMARY KEY (run_id, id),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

// Store persists run state in SQLite. The schema is applied on open.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at the given path. Use ":memory:" for an
// ephemeral store in tests.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun inserts or replaces a run record.
func (s *Store) SaveRun(ctx context.Context, run RunRecord) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	active := 0
	if run.Active {
		active = 1
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, max_floor, gold, gold_earned, items_found, enemies_defeated, active, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   max_floor        = excluded.max_floor,
		   gold             = excluded.gold,
		   gold_earned      = excluded.gold_earned,
		   items_found      = excluded.items_found,
		   enemies_defeated = excluded.enemies_defeated,
		   active           = excluded.active`,
		run.ID,
		run.MaxFloor,
		run.Gold,
		run.GoldEarned,
		run.ItemsFound,
		run.EnemiesDefeated,
		active,
		run.StartedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, max_floor, gold, gold_earned, items_found, enemies_defeated, active, started_at
		   FROM runs WHERE id = ?`,
		id,
	)

	var run RunRecord
	var active int
	var startedAt int64
	err := row.Scan(&run.ID, &run.MaxFloor, &run.Gold, &run.GoldEarned,
		&run.ItemsFound, &run.EnemiesDefeated, &active, &startedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, ErrNotFound
		}
		return RunRecord{}, fmt.Errorf("get run: %w", err)
	}
	run.Active = active != 0
	run.StartedAt = time.UnixMilli(startedAt).UTC()
	return run, nil
}

// ListRuns returns all runs ordered by start time, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, max_floor, gold, gold_earned, items_found, enemies_defeated, active, started_at
		   FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var active int
		var startedAt int64
		if err := rows.Scan(&run.ID, &run.MaxFloor, &run.Gold, &run.GoldEarned,
			&run.ItemsFound, &run.EnemiesDefeated, &active, &startedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		run.Active = active != 0
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// SaveItems replaces the item records stored for a run. Order is preserved.
func (s *Store) SaveItems(ctx context.Context, runID string, records []item.Record) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("save items: %w", err)
	}

	for i, r := range records {
		stats, err := json.Marshal(r.Stats)
		if err != nil {
			return fmt.Errorf("save items: encode stats for %s: %w", r.ID, err)
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO items (run_id, id, name, rarity, level, slot, type, stats,
			                    enchant_level, set_id, gold_value, icon, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, r.ID, r.Name, r.Rarity, r.Level, r.Slot, r.Type, string(stats),
			r.EnchantLevel, r.SetID, r.GoldValue, r.Icon, i,
		)
		if err != nil {
			return fmt.Errorf("save items: insert %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}

// LoadItems returns the item records stored for a run, in saved order.
func (s *Store) LoadItems(ctx context.Context, runID string) ([]item.Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name, rarity, level, slot, type, stats, enchant_level, set_id, gold_value, icon
		   FROM items WHERE run_id = ? ORDER BY position ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()

	var records []item.Record
	for rows.Next() {
		var r item.Record
		var stats string
		if err := rows.Scan(&r.ID, &r.Name, &r.Rarity, &r.Level, &r.Slot, &r.Type,
			&stats, &r.EnchantLevel, &r.SetID, &r.GoldValue, &r.Icon); err != nil {
			return nil, fmt.Errorf("load items: %w", err)
		}
		if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
			return nil, fmt.Errorf("load items: decode stats for %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return records, nil
}
