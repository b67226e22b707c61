package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitship/internal/logging"
)

func TestLogManagerInitialization(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")
	var console bytes.Buffer

	lm, err := logging.NewManager(logging.Config{
		FilePath:   logPath,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
		Level:      "debug",
		Console:    &console,
	})
	if err != nil {
		t.Fatalf("failed to create log manager: %v", err)
	}
	defer lm.Close()

	lm.For("app").Info("test message")
	lm.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
	if !strings.Contains(console.String(), "test message") {
		t.Error("console stream did not receive the entry")
	}
}
