package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// Slot is one key/value row of the persistence table plus its write stamp.
type Slot struct {
	Key   string
	Value string
	Stamp SlotStamp
}

// SlotStamp records who last wrote a slot and when.
type SlotStamp struct {
	WriterID        string
	UpdatedAtUnixMs int64
}

func (st SlotStamp) IsZero() bool { return st.WriterID == "" && st.UpdatedAtUnixMs == 0 }

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the TUI and one-shot CLI invocations may hit the same file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			writer_id TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// PutSlot overwrites the value stored under key.
func (s Store) PutSlot(ctx context.Context, key, value string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO slots(k, v, writer_id, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		key, value, s.WriterID, time.Now().UTC().UnixMilli(),
	)
	return err
}

// GetSlot reads the slot stored under key; ok is false when it was never written.
func (s Store) GetSlot(ctx context.Context, key string) (Slot, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Slot{}, false, err
	}
	defer db.Close()

	out := Slot{Key: key}
	err = db.QueryRowContext(ctx,
		`SELECT v, writer_id, updated_at_unixms FROM slots WHERE k = ?`, key,
	).Scan(&out.Value, &out.Stamp.WriterID, &out.Stamp.UpdatedAtUnixMs)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, false, nil
	}
	if err != nil {
		return Slot{}, false, err
	}
	return out, true, nil
}

// Stamp returns the write stamp of key (zero when absent) without decoding its value.
func (s Store) Stamp(ctx context.Context, key string) (SlotStamp, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return SlotStamp{}, err
	}
	defer db.Close()

	var st SlotStamp
	err = db.QueryRowContext(ctx,
		`SELECT writer_id, updated_at_unixms FROM slots WHERE k = ?`, key,
	).Scan(&st.WriterID, &st.UpdatedAtUnixMs)
	if errors.Is(err, sql.ErrNoRows) {
		return SlotStamp{}, nil
	}
	return st, err
}
