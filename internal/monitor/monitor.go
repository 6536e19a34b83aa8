// internal/monitor/monitor.go
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ddelgado/simtempctl/internal/metrics"
	"github.com/ddelgado/simtempctl/internal/telemetry"
)

// Source is the record stream the monitor drives.
// IMPORTANT: the monitor owns the source; Run closes it on every exit path.
type Source interface {
	WaitAndRead(timeout time.Duration) (*telemetry.Record, error)
	Close() error
}

// Config is the minimal runtime config the monitor needs.
type Config struct {
	PollTimeout time.Duration
	WindowSize  int

	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.Metrics
}

// Monitor drives a telemetry source in a continuous capture loop.
// The loop runs on its own goroutine; consumers receive samples over a
// channel, never by direct mutation of shared presentation state.
type Monitor struct {
	id  string
	cfg Config
	src Source

	mu     sync.Mutex
	window *Window
}

// New creates a monitor with immutable config.
func New(cfg Config, src Source) (*Monitor, error) {
	if cfg.PollTimeout <= 0 {
		return nil, errors.New("monitor: poll timeout must be > 0")
	}
	if cfg.WindowSize <= 0 {
		return nil, errors.New("monitor: window size must be > 0")
	}

	return &Monitor{
		id:     uuid.New().String(),
		cfg:    cfg,
		src:    src,
		window: NewWindow(cfg.WindowSize),
	}, nil
}

// ID identifies this capture session.
func (m *Monitor) ID() string {
	return m.id
}

// Run captures samples until ctx is cancelled.
//
// Cancellation is cooperative: the flag is checked once per poll-timeout
// tick, so worst-case shutdown latency is one poll interval. Read failures
// are logged and the loop continues; the live path never gives up on its
// own. The source is released on every exit path.
func (m *Monitor) Run(ctx context.Context, out chan<- Sample) error {
	defer m.src.Close()

	logger := log.WithField("session", m.id)
	logger.Info("capture loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("capture loop cancelled")
			return nil
		default:
		}

		rec, err := m.src.WaitAndRead(m.cfg.PollTimeout)
		if err != nil {
			if m.cfg.Metrics != nil {
				m.cfg.Metrics.ReadErrors.Inc()
			}
			logger.WithError(err).Warn("telemetry read failed")

			// Back off one poll interval so a dead descriptor
			// cannot spin the loop hot.
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(m.cfg.PollTimeout):
			}
			continue
		}

		if rec == nil {
			// Idle tick or dropped short read.
			if m.cfg.Metrics != nil {
				m.cfg.Metrics.IdlePolls.Inc()
			}
			continue
		}

		s := Sample{
			TimestampNS: rec.TimestampNS,
			TempMilliC:  rec.TempMilliC,
			Alert:       rec.Alert(),
		}

		m.mu.Lock()
		m.window.Push(s)
		m.mu.Unlock()

		if m.cfg.Metrics != nil {
			m.cfg.Metrics.Samples.Inc()
			if s.Alert {
				m.cfg.Metrics.Alerts.Inc()
			}
		}

		select {
		case out <- s:
		case <-ctx.Done():
			return nil
		}
	}
}

// Window returns a copy of the current sample history, oldest first.
func (m *Monitor) Window() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window.Samples()
}
