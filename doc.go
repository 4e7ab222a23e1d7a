// Package tuidrive automates full-screen terminal applications by driving
// their input and reading their rendered output.
//
// tuidrive spawns a real binary on a pseudo-terminal of fixed dimensions,
// feeds its escape-sequence output through an in-memory terminal emulator,
// and exposes the resulting character grid two ways: as a plain-text
// [Screen] snapshot, and as a heuristically parsed [ScreenState] describing
// the instance list, selection, active tab, content pane, menu bar, and
// error banner of the automated UI.
//
// # Quick Start
//
//	sess := tuidrive.New(tuidrive.WithSize(120, 30))
//	if err := sess.Start("cs"); err != nil {
//		return err
//	}
//	defer sess.Stop()
//
//	sess.WaitForStable(0, 0)
//	state := sess.CaptureState()
//	for _, inst := range state.Instances {
//		fmt.Println(inst.Name, inst.Status)
//	}
//
//	sess.Send(tuidrive.Down)
//	sess.WaitForUpdate(0)
//
// # Session Lifecycle
//
// [New] fixes the grid dimensions; they are immutable for the session's
// lifetime. [Session.Start] spawns the process and returns as soon as it is
// launched; waiting for the application to finish drawing is the caller's
// job, via [Session.WaitForStable]. [Session.Stop] shuts down with
// escalating severity (soft-quit key, SIGTERM, SIGKILL), never fails, and is
// idempotent.
//
// # Keys
//
// [Session.Send] takes symbolic key names ([Up], [Enter], [Escape], ...)
// translated through a closed table to raw byte sequences. Names outside the
// table pass through as literal bytes, so application hotkeys like "n" or
// "?" need no dedicated constants, and [Session.SendText] injects arbitrary
// text through the same pty.
//
// # Waiting
//
// Full-screen UIs redraw asynchronously; acting on a half-drawn screen is
// the main source of flaky automation. [Session.WaitForUpdate] returns once
// the screen content has changed (plus a settle delay for multi-frame
// redraws); [Session.WaitForStable] returns once it has stopped changing for
// a stability window. Both poll a digest of the visible text, ignore
// styling-only churn, report timeout as a false return, and never busy-spin.
// [Session.WaitForMatch] polls until a [Matcher] such as [Text] or [Regexp]
// succeeds.
//
// # Parsing
//
// [Parser] turns a grid snapshot into a [ScreenState]. All layout
// assumptions (header and footer row counts, instance-panel fraction,
// status and selection glyphs) live in an explicit [Layout] descriptor.
// Parsing is heuristic screen-scraping: it tolerates individual malformed
// rows (skipped with a warning) but cannot survive the automated UI
// changing its layout. [DefaultLayout] matches the UI as it ships today.
//
// # Concurrency
//
// One session owns one process and one grid exclusively. Operations are
// expected to be invoked sequentially; concurrent action sequences against
// the same session are outside the contract. Waits are wall-clock and
// cancel-free; a pending wait is preempted only by stopping the session.
//
// # Requirements
//
//   - Go 1.24+
//   - Linux or macOS
package tuidrive
