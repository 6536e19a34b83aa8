// internal/attr/store.go
package attr

import (
	"errors"
	"fmt"
)

// Store is a named device attribute store.
// One entry per attribute; attributes are independent resources.
// No cross-attribute transactions.
type Store interface {
	Get(name string) (string, error)
	Set(name, value string) error
}

// ---- ATTRIBUTE NAMES ----

const (
	AttrMode       = "mode"
	AttrThreshold  = "threshold_mC"
	AttrSamplingMS = "sampling_ms"
	AttrStats      = "stats" // read-only diagnostic text
)

// ---- MODE VALUES ----

const (
	ModeNormal = "normal"
	ModeNoisy  = "noisy"
	ModeRamp   = "ramp"
)

// ---- ERRORS ----

// ErrNotFound means the attribute path does not exist.
var ErrNotFound = errors.New("attribute not found")

// ErrRejected means the device did not apply the written value verbatim.
// The device is allowed to clamp or reject writes silently; the effective
// value is only known after a read-back.
var ErrRejected = errors.New("value rejected by device")

// ValidMode reports whether m is one of the device's operating modes.
func ValidMode(m string) bool {
	switch m {
	case ModeNormal, ModeNoisy, ModeRamp:
		return true
	}
	return false
}

// SetVerified writes an attribute and reads it back.
// Set alone is a side effect only; this is the verified variant.
// A read-back that differs from the requested value returns ErrRejected.
func SetVerified(s Store, name, value string) error {
	if err := s.Set(name, value); err != nil {
		return err
	}

	got, err := s.Get(name)
	if err != nil {
		return err
	}

	if got != value {
		return fmt.Errorf("%w: %s: wrote %q, read back %q", ErrRejected, name, value, got)
	}

	return nil
}
