package tuidrive

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Clock abstracts wall-clock time for the polling loops. Tests inject a fake
// clock to drive waits deterministically without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Sampler produces a digest of the current screen content. Two equal sample
// values mean the visible text has not changed between calls.
type Sampler func() uint64

// Detector decides when a live screen has changed or settled by polling a
// content digest. It never busy-spins; every loop iteration suspends on the
// clock for the poll interval. Timeouts are wall-clock, relative to call
// start, and reported as a false return rather than an error; the caller is
// expected to proceed with whatever is on screen.
type Detector struct {
	clock    Clock
	sample   Sampler
	interval time.Duration
	settle   time.Duration
	logger   *log.Logger
}

// NewDetector creates a detector polling the sampler at the given interval.
// After detecting a change, WaitForUpdate sleeps the settle delay so
// multi-frame redraws finish before the caller reads the screen. A nil
// logger discards timeout warnings.
func NewDetector(sample Sampler, clock Clock, interval, settle time.Duration, logger *log.Logger) *Detector {
	if clock == nil {
		clock = systemClock{}
	}
	if interval < minPollInterval {
		interval = minPollInterval
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Detector{
		clock:    clock,
		sample:   sample,
		interval: interval,
		settle:   settle,
		logger:   logger,
	}
}

// WaitForUpdate blocks until the sampled digest differs from its value at
// call start, then waits the settle delay and returns true. If the timeout
// elapses with no change it returns false.
func (d *Detector) WaitForUpdate(timeout time.Duration) bool {
	return d.WaitForUpdateSince(d.sample(), timeout)
}

// WaitForUpdateSince is WaitForUpdate against a caller-supplied baseline
// digest. Capturing the baseline before triggering the redraw means a repaint
// that completes before the first poll still counts as an update.
func (d *Detector) WaitForUpdateSince(base uint64, timeout time.Duration) bool {
	start := d.clock.Now()

	for d.clock.Now().Sub(start) < timeout {
		d.clock.Sleep(d.interval)
		if d.sample() != base {
			d.clock.Sleep(d.settle)
			return true
		}
	}

	d.logger.Warn("screen did not update", "timeout", timeout)
	return false
}

// WaitForStable blocks until the sampled digest has been unchanged for at
// least window, returning true. Any change resets the window. If the timeout
// elapses first it returns false.
func (d *Detector) WaitForStable(timeout, window time.Duration) bool {
	start := d.clock.Now()

	var (
		last        uint64
		haveLast    bool
		stableSince time.Time
		tracking    bool
	)

	for d.clock.Now().Sub(start) < timeout {
		current := d.sample()

		if haveLast && current == last {
			now := d.clock.Now()
			if !tracking {
				stableSince = now
				tracking = true
			} else if now.Sub(stableSince) >= window {
				return true
			}
		} else {
			tracking = false
			last = current
			haveLast = true
		}

		d.clock.Sleep(d.interval)
	}

	d.logger.Warn("screen did not settle", "timeout", timeout, "window", window)
	return false
}
