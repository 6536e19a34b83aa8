// internal/telemetry/reader_test.go
package telemetry

import (
	"errors"
	"testing"
	"time"
)

// ---- fake source ----

// fakeSource replays a script of wait/read outcomes.
type fakeSource struct {
	reads  [][]byte // one entry per readiness event
	pos    int
	closed bool

	waitErr error
}

func (f *fakeSource) Wait(timeout time.Duration) (bool, error) {
	if f.waitErr != nil {
		return false, f.waitErr
	}
	return f.pos < len(f.reads), nil
}

func (f *fakeSource) Read(p []byte) (int, error) {
	data := f.reads[f.pos]
	f.pos++
	return copy(p, data), nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

// ---- tests ----

func TestWaitAndRead_IdleTick(t *testing.T) {
	r := NewReader(&fakeSource{})

	rec, err := r.WaitAndRead(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record on idle tick, got %+v", rec)
	}
}

func TestWaitAndRead_FullRecord(t *testing.T) {
	src := &fakeSource{reads: [][]byte{encodeRecord(42, 40100, FlagAlert)}}
	r := NewReader(src)

	rec, err := r.WaitAndRead(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.TimestampNS != 42 || rec.TempMilliC != 40100 || !rec.Alert() {
		t.Fatalf("decoded %+v", rec)
	}
}

func TestWaitAndRead_ShortReadDropped(t *testing.T) {
	src := &fakeSource{reads: [][]byte{
		encodeRecord(1, 40000, 0)[:7], // truncated
		encodeRecord(2, 40100, 0),
	}}
	r := NewReader(src)

	rec, err := r.WaitAndRead(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("short read surfaced as error: %v", err)
	}
	if rec != nil {
		t.Fatalf("short read produced a record: %+v", rec)
	}

	rec, err = r.WaitAndRead(10 * time.Millisecond)
	if err != nil || rec == nil {
		t.Fatalf("next record lost: rec=%v err=%v", rec, err)
	}
	if rec.TimestampNS != 2 {
		t.Fatalf("timestamp=%d", rec.TimestampNS)
	}
}

func TestWaitAndRead_DrainedAfterReadiness(t *testing.T) {
	// Readiness raced with a drain: Read returns 0 bytes.
	src := &fakeSource{reads: [][]byte{{}}}
	r := NewReader(src)

	rec, err := r.WaitAndRead(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestWaitAndRead_WaitError(t *testing.T) {
	boom := errors.New("poll failed")
	r := NewReader(&fakeSource{waitErr: boom})

	_, err := r.WaitAndRead(10 * time.Millisecond)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wait error, got %v", err)
	}
}

func TestClose_ReleasesSource(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() err=%v", err)
	}
	if !src.closed {
		t.Fatal("source not closed")
	}
}
