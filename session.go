package tuidrive

import (
	"errors"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"

	"github.com/tuidrive/tuidrive/internal/vte"
)

// Session drives one full-screen terminal application: it owns the spawned
// process, the pty it is attached to, and the emulator grid its output is
// rendered into. Grid dimensions are fixed at construction and immutable for
// the session's lifetime.
//
// A Session is not safe for concurrent use. Interleaving two action
// sequences against the same session produces undefined ordering on the
// shared pty and grid; callers that need concurrency run one session per
// task or serialize access themselves. The only internal goroutines are the
// pty reader feeding the emulator and the process reaper.
type Session struct {
	opts     options
	emu      *vte.Emulator
	parser   *Parser
	detector *Detector

	mu      sync.Mutex
	cmd     *exec.Cmd
	ptmx    *os.File
	done    chan struct{}
	running bool
}

// New creates a session with a fixed grid size. No process is spawned until
// Start.
func New(userOpts ...Option) *Session {
	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}

	emu := vte.New(opts.width, opts.height)
	s := &Session{
		opts:   opts,
		emu:    emu,
		parser: NewParser(opts.layout, opts.logger),
	}
	s.detector = NewDetector(emu.Hash, opts.clock, opts.pollInterval, opts.settleDelay, opts.logger)
	return s
}

// Start spawns the command attached to a pty sized to the session grid. It
// returns once the process is launched; waiting for the application to
// become interactive is the caller's job, typically via WaitForStable.
func (s *Session) Start(command string, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return &SpawnError{Command: command, Err: errors.New("session already running")}
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return &SpawnError{Command: command, Err: err}
	}

	cmd := exec.Command(path, args...)
	cmd.Dir = s.opts.dir
	if len(s.opts.env) > 0 {
		cmd.Env = append(os.Environ(), s.opts.env...)
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(s.opts.height),
		Cols: uint16(s.opts.width),
	})
	if err != nil {
		return &SpawnError{Command: command, Err: err}
	}

	done := make(chan struct{})
	go feedEmulator(ptmx, s.emu)
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	s.cmd = cmd
	s.ptmx = ptmx
	s.done = done
	s.running = true
	s.opts.logger.Info("session started", "command", command, "pid", cmd.Process.Pid)
	return nil
}

// feedEmulator copies pty output into the emulator until the pty closes.
func feedEmulator(ptmx *os.File, emu *vte.Emulator) {
	buf := make([]byte, 32*1024)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			_, _ = emu.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// Send translates a symbolic key and writes it to the pty.
func (s *Session) Send(key Key) error {
	return s.write(Translate(key))
}

// SendText writes a literal string to the pty, byte for byte.
func (s *Session) SendText(text string) error {
	return s.write([]byte(text))
}

func (s *Session) write(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}
	if _, err := s.ptmx.Write(b); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

// SendAndWait sends a key and waits for the screen to change. The boolean
// reports whether an update was observed before the default update timeout;
// a false return is non-fatal and the caller proceeds with the current
// screen. The change baseline is captured before the key is written, so a
// repaint that finishes before the first poll still counts as an update.
func (s *Session) SendAndWait(key Key) (updated bool, err error) {
	base := s.emu.Hash()
	if err := s.Send(key); err != nil {
		return false, err
	}
	return s.detector.WaitForUpdateSince(base, s.opts.updateTimeout), nil
}

// WaitForUpdate blocks until the screen content changes, then waits the
// settle delay and returns true. A timeout of 0 uses the session default.
func (s *Session) WaitForUpdate(timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = s.opts.updateTimeout
	}
	return s.detector.WaitForUpdate(timeout)
}

// WaitForStable blocks until the screen content has been unchanged for the
// stability window. Zero values use the session defaults.
func (s *Session) WaitForStable(timeout, window time.Duration) bool {
	if timeout <= 0 {
		timeout = s.opts.stableTimeout
	}
	if window <= 0 {
		window = s.opts.stabilityWindow
	}
	return s.detector.WaitForStable(timeout, window)
}

// Screen returns an immutable snapshot of the current grid.
func (s *Session) Screen() *Screen {
	return NewScreen(s.emu.Lines(), s.opts.width, s.opts.height)
}

// CaptureState parses the current grid into a structured view. It is purely
// derived: two calls over an unchanged grid yield identical results.
func (s *Session) CaptureState() ScreenState {
	return s.parser.Parse(s.Screen())
}

// Parser returns the session's screen parser, for composing state-level
// matchers.
func (s *Session) Parser() *Parser {
	return s.parser
}

// Running reports whether the session has an active process.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	return s.alive()
}

// alive reports process liveness. Caller holds s.mu or owns the done channel.
func (s *Session) alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Stop shuts the session down with escalating severity: soft-quit key, then
// SIGTERM, then SIGKILL, each phase preceded by a liveness check and
// followed by a fixed grace period. It never fails and always leaves the
// session not-running; calling it on an already-stopped session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cmd, ptmx, done := s.cmd, s.ptmx, s.done
	s.mu.Unlock()

	grace := s.opts.phaseTimeout

	if processAlive(done) {
		if _, err := ptmx.Write(Translate(s.opts.quitKey)); err == nil {
			awaitExit(done, grace)
		}
	}
	if processAlive(done) {
		_ = cmd.Process.Signal(syscall.SIGTERM)
		awaitExit(done, grace)
	}
	if processAlive(done) {
		_ = cmd.Process.Kill()
		awaitExit(done, grace)
	}

	_ = ptmx.Close()
	s.opts.logger.Info("session stopped", "pid", cmd.Process.Pid)
}

func processAlive(done chan struct{}) bool {
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// awaitExit waits for the process to be reaped, up to the grace period.
func awaitExit(done chan struct{}, grace time.Duration) {
	select {
	case <-done:
	case <-time.After(grace):
	}
}

// WaitForMatch polls the live screen until the matcher succeeds, returning
// true, or the timeout expires, returning false. A timeout of 0 uses the
// session's stable-wait default.
func (s *Session) WaitForMatch(m Matcher, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = s.opts.stableTimeout
	}

	clock := s.opts.clock
	start := clock.Now()
	desc := "matcher condition"

	for {
		var ok bool
		ok, desc = m(s.Screen())
		if ok {
			return true
		}
		if clock.Now().Sub(start) >= timeout {
			s.opts.logger.Warn("screen never matched", "waiting_for", desc, "timeout", timeout)
			return false
		}
		clock.Sleep(s.opts.pollInterval)
	}
}
