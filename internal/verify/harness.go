// internal/verify/harness.go
package verify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ddelgado/simtempctl/internal/attr"
	"github.com/ddelgado/simtempctl/internal/telemetry"
)

// Source is one telemetry session opened for the waiting phase.
type Source interface {
	WaitAndRead(timeout time.Duration) (*telemetry.Record, error)
	Close() error
}

// OpenFunc opens a fresh telemetry session.
// The harness owns the session for the duration of one run.
type OpenFunc func() (Source, error)

// Params is the test configuration pushed to the device.
// The constants differ between deployments; nothing here is hard-coded truth.
type Params struct {
	Mode            string
	ThresholdMilliC int
	SamplingMS      int

	// Timeout bounds the whole waiting phase (wall clock).
	Timeout time.Duration
	// PollTimeout bounds each individual readiness wait.
	PollTimeout time.Duration
}

// Outcome is the terminal result of one harness run.
// TimedOut is a normal, reported outcome, not a fault.
type Outcome struct {
	RunID   string
	Passed  bool
	Elapsed time.Duration

	// TempMilliC is the observed temperature; set only when Passed.
	TempMilliC int32
}

// ---- STATES ----

// The run walks Setup → Configuring → Waiting → {Passed|TimedOut} →
// Restoring → Done. Restoring executes on every exit path.
type state string

const (
	stateSetup       state = "setup"
	stateConfiguring state = "configuring"
	stateWaiting     state = "waiting"
	stateRestoring   state = "restoring"
	stateDone        state = "done"
)

// testedAttrs lists every attribute the run touches, in snapshot order.
var testedAttrs = []string{attr.AttrMode, attr.AttrThreshold, attr.AttrSamplingMS}

// Harness reconfigures the device, waits for an alert, and restores the
// previous configuration no matter how the wait ends.
type Harness struct {
	store  attr.Store
	open   OpenFunc
	params Params
}

// New creates a harness with immutable parameters.
func New(store attr.Store, open OpenFunc, p Params) (*Harness, error) {
	if store == nil {
		return nil, errors.New("verify: attribute store required")
	}
	if open == nil {
		return nil, errors.New("verify: telemetry open func required")
	}
	if !attr.ValidMode(p.Mode) {
		return nil, fmt.Errorf("verify: invalid mode %q", p.Mode)
	}
	if p.Timeout <= 0 {
		return nil, errors.New("verify: timeout must be > 0")
	}
	if p.PollTimeout <= 0 {
		return nil, errors.New("verify: poll timeout must be > 0")
	}

	return &Harness{store: store, open: open, params: p}, nil
}

// Run executes one configure → wait → restore cycle.
//
// The alert race resolves deterministically: each waiting iteration checks
// the deadline first, then waits at most min(poll timeout, remaining), so
// neither branch starves the other and the first alert-flagged record wins.
// A waiting failure is returned to the caller, but only after Restoring ran.
func (h *Harness) Run(ctx context.Context) (Outcome, error) {
	runID := uuid.New().String()
	logger := log.WithField("run", runID)

	// ------------------------------------------------------------
	// SETUP: per-attribute snapshot
	// ------------------------------------------------------------

	logger.WithField("state", stateSetup).Info("snapshotting configuration")

	// Attributes whose snapshot read failed are absent from the map and
	// skipped during restore.
	snapshot := make(map[string]string, len(testedAttrs))
	for _, name := range testedAttrs {
		v, err := h.store.Get(name)
		if err != nil {
			logger.WithError(err).WithField("attr", name).
				Warn("snapshot read failed; attribute will not be restored")
			continue
		}
		snapshot[name] = v
	}

	// ------------------------------------------------------------
	// RESTORING: guaranteed on every exit path from here on
	// ------------------------------------------------------------

	defer func() {
		logger.WithField("state", stateRestoring).Info("restoring configuration")

		for _, name := range testedAttrs {
			v, ok := snapshot[name]
			if !ok {
				continue
			}
			if err := h.store.Set(name, v); err != nil {
				// One failed restore must not block the rest.
				logger.WithError(err).WithField("attr", name).
					Error("restore failed")
			}
		}
	}()

	// ------------------------------------------------------------
	// CONFIGURING: push the test configuration
	// ------------------------------------------------------------

	logger.WithField("state", stateConfiguring).WithFields(log.Fields{
		"mode":         h.params.Mode,
		"threshold_mC": h.params.ThresholdMilliC,
		"sampling_ms":  h.params.SamplingMS,
	}).Info("applying test configuration")

	writes := []struct{ name, value string }{
		{attr.AttrMode, h.params.Mode},
		{attr.AttrThreshold, strconv.Itoa(h.params.ThresholdMilliC)},
		{attr.AttrSamplingMS, strconv.Itoa(h.params.SamplingMS)},
	}
	for _, w := range writes {
		if err := h.store.Set(w.name, w.value); err != nil {
			return Outcome{RunID: runID}, fmt.Errorf("verify: configure %s: %w", w.name, err)
		}
	}

	// ------------------------------------------------------------
	// WAITING: alert observed vs. deadline elapsed
	// ------------------------------------------------------------

	logger.WithField("state", stateWaiting).Info("waiting for alert")

	src, err := h.open()
	if err != nil {
		return Outcome{RunID: runID}, fmt.Errorf("verify: open telemetry: %w", err)
	}
	defer src.Close()

	start := time.Now()
	deadline := start.Add(h.params.Timeout)

	for {
		if err := ctx.Err(); err != nil {
			return Outcome{RunID: runID, Elapsed: time.Since(start)}, err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			out := Outcome{RunID: runID, Passed: false, Elapsed: time.Since(start)}
			logger.WithField("state", stateDone).WithField("elapsed", out.Elapsed).
				Info("timed out without alert")
			return out, nil
		}

		wait := h.params.PollTimeout
		if remaining < wait {
			wait = remaining
		}

		rec, err := src.WaitAndRead(wait)
		if err != nil {
			return Outcome{RunID: runID, Elapsed: time.Since(start)},
				fmt.Errorf("verify: waiting: %w", err)
		}
		if rec == nil {
			continue
		}

		// First match wins; remaining samples in this run are not consumed.
		if rec.Alert() {
			out := Outcome{
				RunID:      runID,
				Passed:     true,
				Elapsed:    time.Since(start),
				TempMilliC: rec.TempMilliC,
			}
			logger.WithField("state", stateDone).WithFields(log.Fields{
				"temp_mC": out.TempMilliC,
				"elapsed": out.Elapsed,
			}).Info("alert observed")
			return out, nil
		}
	}
}
