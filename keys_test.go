package tuidrive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuidrive/tuidrive"
)

func TestTranslateTableComplete(t *testing.T) {
	for _, k := range tuidrive.Keys() {
		seq := tuidrive.Translate(k)
		require.NotEmpty(t, seq, "key %q translated to empty sequence", k)
	}
}

func TestTranslateSequences(t *testing.T) {
	tests := []struct {
		key  tuidrive.Key
		want string
	}{
		{tuidrive.Up, "\x1b[A"},
		{tuidrive.Down, "\x1b[B"},
		{tuidrive.Right, "\x1b[C"},
		{tuidrive.Left, "\x1b[D"},
		{tuidrive.ShiftUp, "\x1b[1;2A"},
		{tuidrive.ShiftDown, "\x1b[1;2B"},
		{tuidrive.ShiftRight, "\x1b[1;2C"},
		{tuidrive.ShiftLeft, "\x1b[1;2D"},
		{tuidrive.Tab, "\t"},
		{tuidrive.Enter, "\r"},
		{tuidrive.Escape, "\x1b"},
		{tuidrive.CtrlC, "\x03"},
	}
	for _, tt := range tests {
		assert.Equal(t, []byte(tt.want), tuidrive.Translate(tt.key), "key %q", tt.key)
	}
}

func TestTranslatePassthrough(t *testing.T) {
	// Unknown symbols translate to their literal bytes unchanged.
	for _, s := range []string{"n", "D", "?", "x", "hello", "é"} {
		assert.Equal(t, []byte(s), tuidrive.Translate(tuidrive.Key(s)), "symbol %q", s)
	}
}

func TestCtrl(t *testing.T) {
	assert.Equal(t, []byte{0x03}, tuidrive.Translate(tuidrive.Ctrl('c')))
	assert.Equal(t, []byte{0x04}, tuidrive.Translate(tuidrive.Ctrl('d')))
}
