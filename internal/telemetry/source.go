// internal/telemetry/source.go
package telemetry

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Source is a readable telemetry endpoint with bounded readiness waits.
// Exactly one owner per source; the readiness registration is never shared.
type Source interface {
	// Wait blocks up to timeout and reports whether the source is readable.
	Wait(timeout time.Duration) (bool, error)
	// Read performs one non-blocking read. A drained source returns (0, nil).
	Read(p []byte) (int, error)
	Close() error
}

// deviceSource is the real character-device source.
// The descriptor is opened non-blocking; Wait maps to poll(2) with
// POLLIN|POLLPRI interest.
type deviceSource struct {
	fd int
}

// OpenDevice opens the telemetry device exactly once, in non-blocking mode.
func OpenDevice(path string) (Source, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &deviceSource{fd: fd}, nil
}

func (s *deviceSource) Wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{
		Fd:     int32(s.fd),
		Events: unix.POLLIN | unix.POLLPRI,
	}}

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err == unix.EINTR {
		// Interrupted wait counts as an idle tick.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("telemetry: poll: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	return fds[0].Revents&(unix.POLLIN|unix.POLLPRI) != 0, nil
}

func (s *deviceSource) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if err == unix.EAGAIN {
		// Readiness raced with a drain; nothing to read right now.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("telemetry: read: %w", err)
	}
	return n, nil
}

func (s *deviceSource) Close() error {
	return unix.Close(s.fd)
}
