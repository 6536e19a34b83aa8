// internal/telemetry/reader.go
package telemetry

import (
	"time"
)

// Reader decodes fixed-size samples from a Source.
// The reader never retries; loop policy belongs to callers.
type Reader struct {
	src Source
	buf [RecordSize]byte
}

// NewReader wraps an already-open source.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Open opens the device at path and returns a reader owning it.
func Open(path string) (*Reader, error) {
	src, err := OpenDevice(path)
	if err != nil {
		return nil, err
	}
	return NewReader(src), nil
}

// WaitAndRead blocks up to timeout for one sample.
//
// Returns (nil, nil) on an idle tick so callers can check cancellation,
// and (nil, nil) on any read of length != RecordSize: short and partial
// reads are dropped, never raised as errors.
func (r *Reader) WaitAndRead(timeout time.Duration) (*Record, error) {
	ready, err := r.src.Wait(timeout)
	if err != nil {
		return nil, err
	}
	if !ready {
		return nil, nil
	}

	n, err := r.src.Read(r.buf[:])
	if err != nil {
		return nil, err
	}
	if n != RecordSize {
		return nil, nil
	}

	rec, err := Decode(r.buf[:])
	if err != nil {
		return nil, nil
	}

	return &rec, nil
}

// Close releases the underlying source.
func (r *Reader) Close() error {
	return r.src.Close()
}
