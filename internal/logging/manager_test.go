package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManagerRequiresFilePath(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected error for missing FilePath")
	}
}

func TestManagerWritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "gitship.log")
	var console bytes.Buffer

	m, err := NewManager(Config{FilePath: logPath, Console: &console})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer func() { _ = m.Close() }()

	m.For("exec").Info("running command", "cmd", "git init")
	_ = m.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "running command") {
		t.Errorf("log file missing entry: %s", data)
	}
	if !strings.Contains(string(data), "git init") {
		t.Errorf("log file missing field: %s", data)
	}
	if !strings.Contains(console.String(), "running command") {
		t.Errorf("console missing entry: %s", console.String())
	}
}

func TestForCachesLoggers(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(Config{FilePath: filepath.Join(dir, "x.log"), Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer func() { _ = m.Close() }()

	a := m.For("workflow")
	b := m.For("workflow")
	if a != b {
		t.Error("expected cached logger for same scope")
	}
	if a.Scope() != "workflow" {
		t.Errorf("Scope() = %q, want %q", a.Scope(), "workflow")
	}
}

func TestDiscardLoggerIsSafe(t *testing.T) {
	l := Discard().For("anything")
	l.Info("no-op", "k", "v")
	l.Warn("no-op")
	l.Error("no-op")
	l.Debug("no-op")
	if l.With("k", "v").Scope() != "anything" {
		t.Error("With should preserve scope")
	}
}
