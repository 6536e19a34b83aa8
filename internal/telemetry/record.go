// internal/telemetry/record.go
package telemetry

import (
	"encoding/binary"
	"fmt"
)

// RecordSize is the exact wire size of one sample.
// The driver emits packed records with no framing markers; boundaries
// are implicit in the fixed size.
const RecordSize = 16

// FlagAlert marks a sample that crossed the configured threshold.
const FlagAlert = 0x2

// Record is one decoded temperature sample.
//
// Wire layout (little-endian, packed):
//
//	[0:8]   timestamp_ns  u64
//	[8:12]  temp_mC       s32
//	[12:16] flags         s32
type Record struct {
	TimestampNS uint64
	TempMilliC  int32
	Flags       int32
}

// Alert reports whether the threshold-crossed bit is set.
func (r Record) Alert() bool {
	return r.Flags&FlagAlert != 0
}

// Celsius converts the millidegree reading to degrees.
func (r Record) Celsius() float64 {
	return float64(r.TempMilliC) / 1000.0
}

// Decode unpacks exactly one record.
// Pure function: no IO, no side effects.
func Decode(b []byte) (Record, error) {
	if len(b) != RecordSize {
		return Record{}, fmt.Errorf("telemetry: record must be %d bytes, got %d", RecordSize, len(b))
	}

	return Record{
		TimestampNS: binary.LittleEndian.Uint64(b[0:8]),
		TempMilliC:  int32(binary.LittleEndian.Uint32(b[8:12])),
		Flags:       int32(binary.LittleEndian.Uint32(b[12:16])),
	}, nil
}
