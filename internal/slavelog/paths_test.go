package slavelog_test

import (
	"errors"
	"path/filepath"
	"testing"

	"slaved/internal/slavelog"
)

func TestSlavePathIsDeterministic(t *testing.T) {
	first := slavelog.SlavePath("/tmp/logs", "INFO")
	second := slavelog.SlavePath("/tmp/logs", "INFO")
	if first != second {
		t.Fatalf("path computation must be pure: %q vs %q", first, second)
	}
	if first != filepath.Join("/tmp/logs", "slaved.INFO") {
		t.Fatalf("unexpected slave log path: %q", first)
	}
}

func TestFrameworkPathComposition(t *testing.T) {
	path, err := slavelog.FrameworkPath("./work", 7, 42, "stdout")
	if err != nil {
		t.Fatalf("FrameworkPath: %v", err)
	}
	want := filepath.Join("work", "slave-7", "framework-42", "stdout")
	if path != want {
		t.Fatalf("unexpected framework log path: got %q want %q", path, want)
	}
}

func TestFrameworkPathRequiresRegistration(t *testing.T) {
	path, err := slavelog.FrameworkPath("./work", -1, 42, "stdout")
	if !errors.Is(err, slavelog.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	if path != "" {
		t.Fatalf("no path may be constructed while unregistered, got %q", path)
	}
}
