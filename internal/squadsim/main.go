// Command squadsim is a fixture TUI for testing the tuidrive engine. It
// renders a screen in the layout the engine's parser expects: an instance
// list with status glyphs in the left third, a tab bar marked with a block
// cursor, a content pane, a separator-delimited menu bar, and an optional
// error banner.
//
// Keys:
//   - up/down arrows: move the selection marker
//   - tab: cycle the active tab (Preview, Diff, Console)
//   - n: append an instance
//   - D: delete the selected instance
//   - e: toggle the error banner
//   - q: exit with status 0
//
// With -stubborn the quit keys are ignored and SIGTERM is swallowed, so the
// process only dies to SIGKILL. Shutdown escalation tests run against this
// mode.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"
)

type instance struct {
	glyph   rune
	name    string
	project string
	added   int
	removed int
}

type app struct {
	cols      int
	rows      int
	instances []instance
	selected  int
	tab       int
	showError bool
	stubborn  bool
}

var tabs = []string{"Preview", "Diff", "Console"}

func main() {
	stubborn := flag.Bool("stubborn", false, "ignore quit keys and SIGTERM")
	flag.Parse()
	if *stubborn {
		signal.Ignore(syscall.SIGTERM)
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "squadsim: raw mode: %v\r\n", err)
		os.Exit(1)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols == 0 || rows == 0 {
		cols, rows = 120, 30
	}

	a := &app{
		cols:      cols,
		rows:      rows,
		stubborn:  *stubborn,
		instances: []instance{
			{glyph: '●', name: "agent-one", project: "alpha", added: 5, removed: 3},
			{glyph: '⏸', name: "agent-two", project: "beta"},
			{glyph: '○', name: "agent-three"},
		},
	}

	a.draw()

	buf := make([]byte, 16)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		for _, key := range decodeKeys(buf[:n]) {
			if !a.handle(key) {
				return
			}
		}
		a.draw()
	}
}

// decodeKeys splits an input chunk into logical keys, folding CSI cursor
// sequences into single tokens.
func decodeKeys(b []byte) []string {
	var keys []string
	for i := 0; i < len(b); i++ {
		if b[i] == 0x1b && i+2 < len(b) && b[i+1] == '[' {
			keys = append(keys, string(b[i:i+3]))
			i += 2
			continue
		}
		keys = append(keys, string(b[i]))
	}
	return keys
}

func (a *app) handle(key string) bool {
	switch key {
	case "q", "\x03":
		if a.stubborn {
			break
		}
		return false
	case "\x1b[A":
		if a.selected > 0 {
			a.selected--
		}
	case "\x1b[B":
		if a.selected < len(a.instances)-1 {
			a.selected++
		}
	case "\t":
		a.tab = (a.tab + 1) % len(tabs)
	case "n":
		a.instances = append(a.instances, instance{
			glyph: '●',
			name:  fmt.Sprintf("agent-%d", len(a.instances)+1),
		})
	case "D":
		if len(a.instances) > 0 {
			a.instances = append(a.instances[:a.selected], a.instances[a.selected+1:]...)
			if a.selected >= len(a.instances) && a.selected > 0 {
				a.selected--
			}
		}
	case "e":
		a.showError = !a.showError
	}
	return true
}

func (a *app) draw() {
	panel := a.cols / 3
	var b strings.Builder

	b.WriteString("\x1b[2J\x1b[H")

	// Row 1: panel title.
	writeRow(&b, 1, " Instances")

	// Row 2: tab bar in the content pane.
	var tabBar strings.Builder
	tabBar.WriteString(strings.Repeat(" ", panel+2))
	for i, name := range tabs {
		if i == a.tab {
			tabBar.WriteString("█" + name)
		} else {
			tabBar.WriteString(" " + name)
		}
		tabBar.WriteString("   ")
	}
	writeRow(&b, 2, tabBar.String())

	// Rows 3..: instance list plus content pane.
	for i, inst := range a.instances {
		row := 3 + i
		if row > a.rows-4 {
			break
		}
		marker := "  "
		if i == a.selected {
			marker = "> "
		}
		line := marker + string(inst.glyph) + " " + inst.name
		if inst.project != "" {
			line += " (" + inst.project + ")"
		}
		if inst.added > 0 || inst.removed > 0 {
			line += fmt.Sprintf(" +%d -%d", inst.added, inst.removed)
		}
		writeRow(&b, row, line)
	}

	// Content pane beside the list, below the tab bar.
	for i := 0; i < 3; i++ {
		row := 4 + i
		if row > a.rows-4 {
			break
		}
		fmt.Fprintf(&b, "\x1b[%d;%dH%s: content line %d", row, panel+3, tabs[a.tab], i+1)
	}

	// Menu bar on the second-to-last row.
	writeRow(&b, a.rows-1, " n new │ D kill │ tab switch │ q quit")

	// Error banner on the last row.
	if a.showError {
		writeRow(&b, a.rows, " Error: simulated failure")
	}

	os.Stdout.WriteString(b.String())
}

func writeRow(b *strings.Builder, row int, text string) {
	fmt.Fprintf(b, "\x1b[%d;1H%s", row, text)
}
