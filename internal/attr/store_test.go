// internal/attr/store_test.go
package attr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAttr seeds one attribute file the way a driver would expose it.
func writeAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func TestSysfsStore_GetTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, AttrThreshold, "41000\n")

	s := NewSysfsStore(dir)

	got, err := s.Get(AttrThreshold)
	if err != nil {
		t.Fatalf("Get() err=%v", err)
	}
	if got != "41000" {
		t.Fatalf("expected %q, got %q", "41000", got)
	}
}

func TestSysfsStore_GetMissing(t *testing.T) {
	s := NewSysfsStore(t.TempDir())

	_, err := s.Get("no_such_attr")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSysfsStore_SetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, AttrMode, "normal\n")

	s := NewSysfsStore(dir)

	if err := s.Set(AttrMode, ModeRamp); err != nil {
		t.Fatalf("Set() err=%v", err)
	}

	got, err := s.Get(AttrMode)
	if err != nil {
		t.Fatalf("Get() err=%v", err)
	}
	if got != ModeRamp {
		t.Fatalf("expected %q, got %q", ModeRamp, got)
	}
}

func TestSysfsStore_SetMissingAttribute(t *testing.T) {
	s := NewSysfsStore(t.TempDir())

	err := s.Set("no_such_attr", "1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStore_MissingAttribute(t *testing.T) {
	s := NewMemStore(map[string]string{AttrMode: ModeNormal})

	if _, err := s.Get(AttrThreshold); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if err := s.Set(AttrThreshold, "41000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Set: expected ErrNotFound, got %v", err)
	}
}

func TestSetVerified_Applied(t *testing.T) {
	s := NewMemStore(map[string]string{AttrThreshold: "40000"})

	if err := SetVerified(s, AttrThreshold, "41000"); err != nil {
		t.Fatalf("SetVerified() err=%v", err)
	}
}

func TestSetVerified_Clamped(t *testing.T) {
	s := NewMemStore(map[string]string{AttrSamplingMS: "100"})

	// Device clamps sampling below 10 ms.
	s.Clamp = func(name, value string) string {
		if name == AttrSamplingMS && value == "1" {
			return "10"
		}
		return value
	}

	err := SetVerified(s, AttrSamplingMS, "1")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []string{ModeNormal, ModeNoisy, ModeRamp} {
		if !ValidMode(m) {
			t.Fatalf("expected %q valid", m)
		}
	}
	if ValidMode("turbo") {
		t.Fatal("expected \"turbo\" invalid")
	}
}
