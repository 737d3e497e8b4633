package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/game"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS game_snapshots (
	game_id    TEXT PRIMARY KEY,
	join_code  TEXT NOT NULL DEFAULT '',
	phase      TEXT NOT NULL,
	snapshot   TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_snapshots_updated_at ON game_snapshots(updated_at);
`

// SQLiteSnapshotStore persists snapshots in a SQLite file
type SQLiteSnapshotStore struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// OpenSQLiteSnapshotStore opens (and creates if missing) the SQLite
// database file and bootstraps the schema. WAL journaling and a busy
// timeout keep concurrent saves from tripping over each other.
func OpenSQLiteSnapshotStore(dsn string, log zerolog.Logger) (*SQLiteSnapshotStore, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &SQLiteSnapshotStore{db: db, log: log, now: time.Now}, nil
}

// Close releases the underlying database handle
func (s *SQLiteSnapshotStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, snap *game.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_snapshots (game_id, join_code, phase, snapshot, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			join_code = excluded.join_code,
			phase = excluded.phase,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		snap.ID, snap.JoinCode, snap.Phase.String(), string(data), s.now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context, gameID string) (*game.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM game_snapshots WHERE game_id = ?`, gameID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", gameID, err)
	}
	return game.UnmarshalSnapshot([]byte(data))
}

func (s *SQLiteSnapshotStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id FROM game_snapshots ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteSnapshotStore) Delete(ctx context.Context, gameID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM game_snapshots WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", gameID, err)
	}
	return nil
}

// PruneOlderThan removes snapshots that have not been touched since
// the cutoff, returning how many rows went
func (s *SQLiteSnapshotStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM game_snapshots WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.log.Info().Int64("pruned", n).Msg("pruned stale game snapshots")
	}
	return n, nil
}
