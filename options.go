package tuidrive

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

type options struct {
	width           int
	height          int
	env             []string
	dir             string
	pollInterval    time.Duration
	settleDelay     time.Duration
	updateTimeout   time.Duration
	stableTimeout   time.Duration
	stabilityWindow time.Duration
	quitKey         Key
	phaseTimeout    time.Duration
	layout          Layout
	logger          *log.Logger
	clock           Clock
}

// Option configures a Session created by New.
type Option func(*options)

// WithSize sets the terminal dimensions (columns x rows). Dimensions are
// fixed for the lifetime of the session.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithEnv appends environment variables to the process environment.
// Each entry should be in "KEY=VALUE" format.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithDir sets the working directory for the spawned process.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithPollInterval sets the sampling interval used by the wait calls.
// Values under 10ms are clamped to 10ms.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d < minPollInterval {
			d = minPollInterval
		}
		o.pollInterval = d
	}
}

// WithSettleDelay sets the extra wait applied after WaitForUpdate detects a
// change, allowing multi-frame redraws to finish before the screen is read.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		o.settleDelay = d
	}
}

// WithUpdateTimeout sets the default timeout for WaitForUpdate.
func WithUpdateTimeout(d time.Duration) Option {
	return func(o *options) {
		o.updateTimeout = d
	}
}

// WithStableTimeout sets the default timeout for WaitForStable.
func WithStableTimeout(d time.Duration) Option {
	return func(o *options) {
		o.stableTimeout = d
	}
}

// WithStabilityWindow sets the default unchanged duration WaitForStable
// requires before it considers the screen settled.
func WithStabilityWindow(d time.Duration) Option {
	return func(o *options) {
		o.stabilityWindow = d
	}
}

// WithQuitKey sets the soft-quit key sent as the first phase of Stop.
func WithQuitKey(k Key) Option {
	return func(o *options) {
		o.quitKey = k
	}
}

// WithStopPhaseTimeout sets how long Stop waits for the process to exit
// after each escalation phase (soft-quit key, SIGTERM).
func WithStopPhaseTimeout(d time.Duration) Option {
	return func(o *options) {
		o.phaseTimeout = d
	}
}

// WithLayout sets the screen layout descriptor used by CaptureState.
func WithLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithLogger sets the logger used for parse warnings and lifecycle events.
// The default logger discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock injects a clock for the polling loops. Tests use this to drive
// the wait calls deterministically; the default is the system clock.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

const (
	defaultWidth           = 120
	defaultHeight          = 30
	defaultPollInterval    = 100 * time.Millisecond
	defaultSettleDelay     = 200 * time.Millisecond
	defaultUpdateTimeout   = 2 * time.Second
	defaultStableTimeout   = 3 * time.Second
	defaultStabilityWindow = 500 * time.Millisecond
	defaultPhaseTimeout    = 1 * time.Second
	defaultQuitKey         = Key("q")
	minPollInterval        = 10 * time.Millisecond
)

func defaultOptions() options {
	return options{
		width:           defaultWidth,
		height:          defaultHeight,
		pollInterval:    defaultPollInterval,
		settleDelay:     defaultSettleDelay,
		updateTimeout:   defaultUpdateTimeout,
		stableTimeout:   defaultStableTimeout,
		stabilityWindow: defaultStabilityWindow,
		quitKey:         defaultQuitKey,
		phaseTimeout:    defaultPhaseTimeout,
		layout:          DefaultLayout(),
		logger:          log.New(io.Discard),
		clock:           systemClock{},
	}
}
