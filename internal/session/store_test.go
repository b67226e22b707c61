package session

import (
	"os"
	"path/filepath"
	"testing"

	"gitship/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.yaml"), logging.Discard().For("session"))
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	sess := s.Load()
	if sess.DefaultBranch != "main" {
		t.Errorf("DefaultBranch = %q, want %q", sess.DefaultBranch, "main")
	}
	if sess.RemoteName != "origin" {
		t.Errorf("RemoteName = %q, want %q", sess.RemoteName, "origin")
	}
	if sess.State != StateStart {
		t.Errorf("State = %q, want %q", sess.State, StateStart)
	}
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	sess := s.Load()
	if sess != Empty() {
		t.Errorf("corrupt store should load as empty session, got %+v", sess)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	sess := Empty()
	sess.ProjectPath = "/home/user/project"
	sess.RepoName = "project"
	sess.LastCommitMessage = "initial import"
	sess.State = StateCommitted
	s.Save(sess)

	got := s.Load()
	if got != sess {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, sess)
	}
}

func TestSaveIsByteStable(t *testing.T) {
	s := newTestStore(t)

	sess := s.Load()
	sess.ProjectPath = "/tmp/p"
	s.Save(sess)

	first, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	s.Save(s.Load())
	second, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("save(load()) not byte-identical:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestSaveDegradesOnFailure(t *testing.T) {
	dir := t.TempDir()
	// Point the store inside a path that is a file, not a directory.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(filepath.Join(blocker, "session.yaml"), logging.Discard().For("session"))

	s.Save(Empty())
	if !s.Degraded() {
		t.Error("store should degrade after a failed save")
	}
	// Further saves are silent no-ops.
	s.Save(Empty())
}

func TestStateReached(t *testing.T) {
	tests := []struct {
		at, want State
		reached  bool
	}{
		{StateStart, StateStart, true},
		{StateStart, StateCommitted, false},
		{StateCommitted, StateRepoInitialized, true},
		{StateDone, StateVisualized, true},
		{StatePushed, StateDone, false},
		{State("bogus"), StateIdentityChecked, false},
	}
	for _, tt := range tests {
		if got := tt.at.Reached(tt.want); got != tt.reached {
			t.Errorf("%q.Reached(%q) = %v, want %v", tt.at, tt.want, got, tt.reached)
		}
	}
}
