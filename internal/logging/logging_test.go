package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_FileOutput_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "checklist.log")

	logger, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden debug")
	logger.Warn("visible warning", zap.Int("id", 7))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if strings.Contains(out, "hidden debug") {
		t.Fatalf("expected debug to be filtered at default level; got:\n%s", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, `"id":7`) {
		t.Fatalf("expected structured warning in log; got:\n%s", out)
	}
}

func TestNew_Verbose_IncludesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.log")

	logger, err := New(Options{Path: path, Verbose: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("debug line")
	_ = logger.Sync()

	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "debug line") {
		t.Fatalf("expected debug line with verbose; got:\n%s", string(b))
	}
}
