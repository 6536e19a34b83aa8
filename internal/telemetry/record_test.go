// internal/telemetry/record_test.go
package telemetry

import (
	"encoding/binary"
	"testing"
)

// encodeRecord builds the wire form of one sample.
func encodeRecord(ts uint64, tempMilliC, flags int32) []byte {
	b := make([]byte, RecordSize)
	binary.LittleEndian.PutUint64(b[0:8], ts)
	binary.LittleEndian.PutUint32(b[8:12], uint32(tempMilliC))
	binary.LittleEndian.PutUint32(b[12:16], uint32(flags))
	return b
}

func TestDecode_KnownSample(t *testing.T) {
	rec, err := Decode(encodeRecord(1_000_000_000, 25500, 0))
	if err != nil {
		t.Fatalf("Decode() err=%v", err)
	}

	if rec.TimestampNS != 1_000_000_000 {
		t.Fatalf("timestamp=%d", rec.TimestampNS)
	}
	if rec.Celsius() != 25.50 {
		t.Fatalf("celsius=%v", rec.Celsius())
	}
	if rec.Alert() {
		t.Fatal("alert set with flags=0")
	}
}

func TestDecode_AlertIndependentOfTemperature(t *testing.T) {
	for _, temp := range []int32{-40000, 0, 25500, 44000} {
		rec, err := Decode(encodeRecord(1, temp, FlagAlert))
		if err != nil {
			t.Fatalf("Decode() err=%v", err)
		}
		if !rec.Alert() {
			t.Fatalf("alert not set for temp=%d", temp)
		}
		if rec.TempMilliC != temp {
			t.Fatalf("temp=%d, want %d", rec.TempMilliC, temp)
		}
	}
}

func TestDecode_NegativeTemperature(t *testing.T) {
	rec, err := Decode(encodeRecord(1, -12345, 0))
	if err != nil {
		t.Fatalf("Decode() err=%v", err)
	}
	if rec.TempMilliC != -12345 {
		t.Fatalf("temp=%d", rec.TempMilliC)
	}
}

func TestDecode_WrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 32} {
		if _, err := Decode(make([]byte, n)); err == nil {
			t.Fatalf("expected error for len=%d", n)
		}
	}
}
