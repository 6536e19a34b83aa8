// internal/monitor/window.go
package monitor

// Sample is one decoded observation delivered to consumers.
type Sample struct {
	TimestampNS uint64
	TempMilliC  int32
	Alert       bool
}

// Celsius converts the millidegree reading to degrees.
func (s Sample) Celsius() float64 {
	return float64(s.TempMilliC) / 1000.0
}

// Window is a bounded drop-oldest sample history.
// Not safe for concurrent use; owned by the capture loop.
type Window struct {
	cap     int
	samples []Sample
}

// NewWindow creates a window holding at most capacity samples.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{cap: capacity}
}

// Push appends a sample, dropping the oldest entry on overflow.
func (w *Window) Push(s Sample) {
	w.samples = append(w.samples, s)
	if len(w.samples) > w.cap {
		w.samples = w.samples[len(w.samples)-w.cap:]
	}
}

// Len reports the current number of samples.
func (w *Window) Len() int {
	return len(w.samples)
}

// Samples returns a copy of the current history, oldest first.
func (w *Window) Samples() []Sample {
	out := make([]Sample, len(w.samples))
	copy(out, w.samples)
	return out
}
