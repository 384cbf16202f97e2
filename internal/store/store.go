package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"checklist-cli/internal/model"

	"github.com/google/uuid"
)

// TasksKey is the single well-known slot holding the serialized item list.
const TasksKey = "tasks"

const sqliteFileName = "checklist.sqlite"

// Store is the persistence adapter for one data directory.
//
// WriterID identifies this process in slot stamps so watchers can tell their own writes
// from writes made by another checklist process (last writer wins).
type Store struct {
	Dir      string
	WriterID string
}

func New(dir string) Store {
	return Store{Dir: dir, WriterID: uuid.NewString()}
}

// ResolveDir picks the data directory: explicit flag, CHECKLIST_DIR, config dataDir,
// then the config dir itself.
func ResolveDir(flagDir string) (string, error) {
	if d := strings.TrimSpace(flagDir); d != "" {
		return d, nil
	}
	if d := strings.TrimSpace(os.Getenv("CHECKLIST_DIR")); d != "" {
		return d, nil
	}
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if d := strings.TrimSpace(cfg.DataDir); d != "" {
		return d, nil
	}
	return ConfigDir()
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// LogPath is where the TUI writes its log (the terminal belongs to the UI).
func (s Store) LogPath() string {
	return filepath.Join(s.Dir, "checklist.log")
}

// SaveItems serializes the full sequence and overwrites the tasks slot.
func (s Store) SaveItems(ctx context.Context, items []model.Item) error {
	v, err := EncodeItems(items)
	if err != nil {
		return err
	}
	if err := s.PutSlot(ctx, TasksKey, v); err != nil {
		return fmt.Errorf("save %s: %w", TasksKey, err)
	}
	return nil
}

// LoadItems reads the tasks slot. found is false when nothing was ever saved.
// Unparseable contents are reported as ErrMalformed.
func (s Store) LoadItems(ctx context.Context) ([]model.Item, bool, error) {
	slot, ok, err := s.GetSlot(ctx, TasksKey)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", TasksKey, err)
	}
	if !ok {
		return nil, false, nil
	}
	items, err := DecodeItems(slot.Value)
	if err != nil {
		return nil, true, err
	}
	return items, true, nil
}
