package instance

import (
	"path/filepath"
	"testing"
)

func TestLockAndUnlock(t *testing.T) {
	dir := t.TempDir()

	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	Unlock(fl)

	// Lockable again after release.
	fl2, err := Lock(dir)
	if err != nil {
		t.Fatalf("relock after unlock: %v", err)
	}
	Unlock(fl2)
}

func TestLockCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	Unlock(fl)
}

func TestSecondLockFails(t *testing.T) {
	dir := t.TempDir()

	fl, err := Lock(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer Unlock(fl)

	if _, err := Lock(dir); err == nil {
		t.Fatal("second lock in the same process should fail")
	}
}
