package tuidrive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuidrive/tuidrive"
)

func TestScreenAccessors(t *testing.T) {
	scr := tuidrive.NewScreen([]string{"first line", "second line", ""}, 80, 3)

	w, h := scr.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 3, h)

	assert.Equal(t, "first line", scr.Line(0))
	assert.True(t, scr.Contains("second"))
	assert.False(t, scr.Contains("third"))
	assert.Equal(t, "first line\nsecond line\n", scr.String())
}

func TestScreenLinesReturnsCopy(t *testing.T) {
	scr := tuidrive.NewScreen([]string{"immutable"}, 80, 1)

	lines := scr.Lines()
	lines[0] = "modified"
	assert.Equal(t, "immutable", scr.Lines()[0])
}

func TestScreenHashIgnoresTrailingWhitespace(t *testing.T) {
	a := tuidrive.NewScreen([]string{"row one", "row two"}, 80, 2)
	b := tuidrive.NewScreen([]string{"row one   ", "row two\t"}, 80, 2)

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestScreenHashChangesWithContent(t *testing.T) {
	a := tuidrive.NewScreen([]string{"row one", "row two"}, 80, 2)
	b := tuidrive.NewScreen([]string{"row one", "row 2"}, 80, 2)

	require.NotEqual(t, a.Hash(), b.Hash())
}
