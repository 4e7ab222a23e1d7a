package tuidrive

import (
	"hash/fnv"
	"strings"
)

// Screen is an immutable snapshot of terminal content.
type Screen struct {
	lines  []string
	raw    string
	width  int
	height int
	digest uint64
}

// NewScreen creates a Screen from raw row text. Trailing whitespace is
// trimmed per row so attribute-only churn and padding never affect the
// digest. Sessions produce Screens from the live grid; constructing one
// directly is mostly useful for exercising matchers and the parser against
// synthetic rows.
func NewScreen(rows []string, width, height int) *Screen {
	lines := make([]string, len(rows))
	for i, l := range rows {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	raw := strings.Join(lines, "\n")

	h := fnv.New64a()
	h.Write([]byte(raw))

	return &Screen{
		lines:  lines,
		raw:    raw,
		width:  width,
		height: height,
		digest: h.Sum64(),
	}
}

// String returns the full screen content as a string.
func (s *Screen) String() string {
	return s.raw
}

// Lines returns a copy of the screen content as a slice of strings, one per
// row. The returned slice is a shallow copy; callers may modify it without
// affecting the Screen.
func (s *Screen) Lines() []string {
	cp := make([]string, len(s.lines))
	copy(cp, s.lines)
	return cp
}

// Line returns the content of a single row (0-indexed).
// Panics if n is out of range.
func (s *Screen) Line(n int) string {
	return s.lines[n]
}

// Contains reports whether the screen contains the substring.
func (s *Screen) Contains(substr string) bool {
	return strings.Contains(s.raw, substr)
}

// Size returns the width and height.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// Hash returns a digest of the visible text. Two screens with the same
// visible content have the same hash regardless of styling.
func (s *Screen) Hash() uint64 {
	return s.digest
}
