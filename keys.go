package tuidrive

// Key is a symbolic key name understood by [Session.Send].
type Key string

// Symbolic keys with dedicated byte sequences.
const (
	Up         Key = "up"
	Down       Key = "down"
	Left       Key = "left"
	Right      Key = "right"
	ShiftUp    Key = "shift_up"
	ShiftDown  Key = "shift_down"
	ShiftLeft  Key = "shift_left"
	ShiftRight Key = "shift_right"
	Tab        Key = "tab"
	Enter      Key = "enter"
	Escape     Key = "escape"
	CtrlC      Key = "ctrl_c"
)

// keySequences is the closed translation table. Navigation keys map to CSI
// cursor sequences, control keys to their ASCII control bytes. Anything not
// in the table passes through as literal bytes, so plain characters and
// application hotkeys go through the same primitive as control keys.
var keySequences = map[Key][]byte{
	Up:         []byte("\x1b[A"),
	Down:       []byte("\x1b[B"),
	Right:      []byte("\x1b[C"),
	Left:       []byte("\x1b[D"),
	ShiftUp:    []byte("\x1b[1;2A"),
	ShiftDown:  []byte("\x1b[1;2B"),
	ShiftRight: []byte("\x1b[1;2C"),
	ShiftLeft:  []byte("\x1b[1;2D"),
	Tab:        []byte("\t"),
	Enter:      []byte("\r"),
	Escape:     []byte("\x1b"),
	CtrlC:      []byte{0x03},
}

// Translate returns the raw byte sequence for a symbolic key. Unknown
// symbols translate to their literal bytes unchanged; Translate never fails.
func Translate(k Key) []byte {
	if seq, ok := keySequences[k]; ok {
		return seq
	}
	return []byte(k)
}

// Ctrl returns the key for Ctrl+<char>. The result is the raw control byte,
// delivered through the literal pass-through path.
func Ctrl(c byte) Key {
	return Key([]byte{c & 0x1f})
}

// Keys returns the symbolic names in the translation table, in no
// particular order.
func Keys() []Key {
	ks := make([]Key, 0, len(keySequences))
	for k := range keySequences {
		ks = append(ks, k)
	}
	return ks
}
