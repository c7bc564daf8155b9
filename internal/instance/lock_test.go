package instance

import "testing"

func TestLock_SecondAcquireFails(t *testing.T) {
	dir := t.TempDir()

	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}
	defer Unlock(fl)

	if _, err := Lock(dir); err == nil {
		t.Fatal("second Lock on same dir should fail")
	}
}

func TestLock_ReleasedLockCanBeReacquired(t *testing.T) {
	dir := t.TempDir()

	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	Unlock(fl)

	fl2, err := Lock(dir)
	if err != nil {
		t.Fatalf("re-Lock after Unlock: %v", err)
	}
	Unlock(fl2)
}

func TestLock_CreatesDataDir(t *testing.T) {
	dir := t.TempDir() + "/nested/state"
	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock with missing dir: %v", err)
	}
	Unlock(fl)
}
