package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"checklist-cli/internal/store"

	"github.com/google/go-cmp/cmp"
)

func decodeConfig(t *testing.T, out []byte) store.GlobalConfig {
	t.Helper()
	var v struct {
		Data store.GlobalConfig `json:"data"`
		Path string             `json:"path"`
	}
	if err := json.Unmarshal(out, &v); err != nil {
		t.Fatalf("unmarshal config output: %v\nstdout:\n%s", err, string(out))
	}
	if filepath.Base(v.Path) != "config.json" {
		t.Fatalf("unexpected config path %q", v.Path)
	}
	return v.Data
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	setupDir(t)
	dataDir := filepath.Join(t.TempDir(), "tasks")

	out, _, err := runCLI(t, []string{"config"})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if diff := cmp.Diff(store.GlobalConfig{}, decodeConfig(t, out)); diff != "" {
		t.Fatalf("expected empty config (-want +got):\n%s", diff)
	}

	if _, _, err := runCLI(t, []string{"config", "set", "dataDir", dataDir}); err != nil {
		t.Fatalf("config set dataDir: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "set", "tui.glyphs", "ASCII"}); err != nil {
		t.Fatalf("config set tui.glyphs: %v", err)
	}

	out, _, err = runCLI(t, []string{"config"})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	want := store.GlobalConfig{DataDir: dataDir, TUI: &store.TUIConfig{Glyphs: "ascii"}}
	if diff := cmp.Diff(want, decodeConfig(t, out)); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}

	// Without --dir the configured dataDir is used.
	if _, _, err := runCLI(t, []string{"add", "Buy milk"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, found, err := store.New(dataDir).LoadItems(context.Background())
	if err != nil || !found || len(items) != 1 {
		t.Fatalf("expected the task in the configured dataDir; items=%+v found=%v err=%v", items, found, err)
	}

	// No value clears the key.
	out, _, err = runCLI(t, []string{"config", "set", "tui.glyphs"})
	if err != nil {
		t.Fatalf("config set tui.glyphs (clear): %v", err)
	}
	if got := decodeConfig(t, out); got.TUI != nil {
		t.Fatalf("expected tui cleared; got %+v", got.TUI)
	}
}

func TestCLI_ConfigSetRejectsBadInput(t *testing.T) {
	setupDir(t)

	tests := [][]string{
		{"config", "set", "nope", "x"},
		{"config", "set", "tui.glyphs", "emoji"},
	}
	for _, args := range tests {
		if _, _, err := runCLI(t, args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}

	path, err := store.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(&store.GlobalConfig{}, cfg); diff != "" {
		t.Fatalf("rejected set must not write %s (-want +got):\n%s", path, diff)
	}
}
