// Package vte wraps an in-memory VT terminal emulator behind the small
// surface the automation engine needs: feed raw pty output in, take
// plain-text row snapshots and a cheap content digest out. It is internal to
// the tuidrive package.
package vte

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/x/vt"
)

// Emulator interprets an escape-sequence-encoded output stream into a
// character grid of fixed dimensions. It is safe for one writer (the pty
// reader goroutine) and concurrent readers.
type Emulator struct {
	emu  *vt.SafeEmulator
	cols int
	rows int
}

// New creates an emulator with the given dimensions. Dimensions should match
// the pty size or cursor positioning comes out wrong.
func New(cols, rows int) *Emulator {
	return &Emulator{
		emu:  vt.NewSafeEmulator(cols, rows),
		cols: cols,
		rows: rows,
	}
}

// Write feeds raw pty output into the emulator. It implements io.Writer so
// it can sit directly on the receiving end of the pty copy loop.
func (e *Emulator) Write(p []byte) (int, error) {
	return e.emu.Write(p)
}

// Lines returns the current grid as plain text, one string per row, exactly
// rows entries, each right-trimmed. Styling is dropped by construction.
func (e *Emulator) Lines() []string {
	raw := e.emu.String()
	lines := strings.Split(raw, "\n")

	out := make([]string, e.rows)
	for i := 0; i < e.rows; i++ {
		if i < len(lines) {
			out[i] = strings.TrimRight(lines[i], " \t\r")
		}
	}
	return out
}

// Hash returns a digest of the visible text. Attribute churn that does not
// change any glyph leaves the hash unchanged.
func (e *Emulator) Hash() uint64 {
	h := fnv.New64a()
	for _, line := range e.Lines() {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Size returns the grid dimensions.
func (e *Emulator) Size() (cols, rows int) {
	return e.cols, e.rows
}
