package debugger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dbgpanel/internal/logging"
)

func TestExecHost_RunCapturesStdoutOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captured")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	h := NewExecHost(false, logging.NopLogger())
	exited := make(chan error, 1)
	err = h.Run(
		[]string{"/bin/sh", "-c", "echo to-stdout; echo to-stderr 1>&2"},
		f,
		func(err error) { exited <- err },
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	select {
	case err := <-exited:
		if err != nil {
			t.Fatalf("subordinate failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("subordinate never exited")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to-stdout") {
		t.Errorf("stdout missing from capture: %q", data)
	}
	if strings.Contains(string(data), "to-stderr") {
		t.Errorf("stderr leaked into capture: %q", data)
	}
}

func TestExecHost_RunRejectsEmptyArgs(t *testing.T) {
	h := NewExecHost(false, logging.NopLogger())
	if err := h.Run(nil, nil, nil); err == nil {
		t.Fatal("empty args should fail")
	}
}
