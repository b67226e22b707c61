package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gitship/internal/probe"
	"gitship/internal/prompt"
	"gitship/internal/workflow"
)

func TestExecuteDispatchesCommand(t *testing.T) {
	app := NewApp("test")
	ran := false
	app.AddCommand(&Command{
		Name:    "noop",
		Summary: "does nothing",
		Usage:   "Usage: gitship noop",
		Run: func(args []string) error {
			ran = true
			return nil
		},
	})

	var errOut bytes.Buffer
	if code := app.Execute([]string{"noop"}, &errOut); code != ExitOK {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !ran {
		t.Error("command did not run")
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	app := NewApp("test")
	var errOut bytes.Buffer

	if code := app.Execute([]string{"bogus"}, &errOut); code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(errOut.String(), "unknown command") {
		t.Errorf("missing diagnostic: %s", errOut.String())
	}
}

func TestExecuteCommandHelp(t *testing.T) {
	app := NewApp("test")
	app.AddCommand(&Command{
		Name:  "push",
		Usage: "Usage: gitship push",
		Run: func(args []string) error {
			t.Fatal("command must not run for --help")
			return nil
		},
	})

	var errOut bytes.Buffer
	if code := app.Execute([]string{"push", "--help"}, &errOut); code != ExitOK {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(errOut.String(), "Usage: gitship push") {
		t.Errorf("usage not printed: %s", errOut.String())
	}
}

func TestExecuteErrorMapsToExitCode(t *testing.T) {
	app := NewApp("test")
	app.AddCommand(&Command{
		Name: "push",
		Run: func(args []string) error {
			return probe.ErrGitMissing
		},
	})

	var errOut bytes.Buffer
	if code := app.Execute(nil, &errOut); code != ExitGitMissing {
		t.Errorf("exit code = %d, want %d", code, ExitGitMissing)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{probe.ErrGitMissing, ExitGitMissing},
		{ErrNoSession, ExitNoSession},
		{workflow.ErrConfigIncomplete, ExitNoSession},
		{prompt.ErrCanceled, ExitCanceled},
		{context.Canceled, ExitCanceled},
		{workflow.ErrPushFailed, ExitPushFailed},
		{errors.New("anything else"), ExitFailure},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestResolveDataDir(t *testing.T) {
	if got := ResolveDataDir("/custom/dir"); got != "/custom/dir" {
		t.Errorf("explicit config dir not honored: %q", got)
	}
	got := ResolveDataDir("")
	if filepath.Base(got) != "gitship" {
		t.Errorf("default data dir = %q, want .../gitship", got)
	}
}

func TestBuildAppRegistersCommands(t *testing.T) {
	app := BuildApp("1.0.0", "")
	var help bytes.Buffer
	app.PrintHelp(&help)

	for _, name := range []string{"push", "history", "doctor", "record", "collect", "version"} {
		if !strings.Contains(help.String(), name) {
			t.Errorf("help missing command %q:\n%s", name, help.String())
		}
	}
}
