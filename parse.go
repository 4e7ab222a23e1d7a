package tuidrive

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

// Glyphs the automated UI uses as indicators.
const (
	glyphActive    = '●'
	glyphPaused    = '⏸'
	glyphStopped   = '○'
	glyphCursor    = '█'
	glyphSeparator = '│'
)

// Layout describes where the automated UI draws what. The parser is a pure
// function of (rows, layout); every offset and glyph set lives here rather
// than in hidden constants.
//
// Screen-scraping is inherently coupled to the automated application's fixed
// layout. If the application changes its row reservations, panel fraction,
// or indicator glyphs, parsing silently degrades; the layout descriptor
// makes that coupling explicit but cannot correct for it.
type Layout struct {
	// HeaderRows is the number of top rows excluded from instance scanning.
	HeaderRows int
	// FooterRows is the number of bottom rows excluded from instance
	// scanning and content extraction.
	FooterRows int
	// ContentTopRow is the first row of the content pane.
	ContentTopRow int
	// TabScanRows is how many top rows are searched for the active tab.
	TabScanRows int
	// MenuRows is how many bottom rows are searched for menu items.
	MenuRows int
	// ErrorScanRows is how many bottom rows are searched for error banners.
	ErrorScanRows int
	// PanelDivisor sets the instance panel width to width/PanelDivisor.
	PanelDivisor int
	// StatusGlyphs are the runes that qualify a row as an instance row.
	StatusGlyphs []rune
	// SelectionPrefix marks a selected row when it leads the trimmed text.
	SelectionPrefix string
	// CursorGlyph marks both the selected row and the active tab label.
	CursorGlyph rune
	// MenuSeparators are the runes menu rows are split on.
	MenuSeparators []rune
	// MaxNameLen is the display-width cap for instance names.
	MaxNameLen int
	// DefaultBranch is reported when no explicit branch marker is present.
	DefaultBranch string
}

// DefaultLayout returns the layout of the automated UI as it ships today.
func DefaultLayout() Layout {
	return Layout{
		HeaderRows:      1,
		FooterRows:      3,
		ContentTopRow:   3,
		TabScanRows:     5,
		MenuRows:        3,
		ErrorScanRows:   5,
		PanelDivisor:    3,
		StatusGlyphs:    []rune{glyphActive, glyphPaused, glyphStopped},
		SelectionPrefix: ">",
		CursorGlyph:     glyphCursor,
		MenuSeparators:  []rune{glyphSeparator, '|'},
		MaxNameLen:      20,
		DefaultBranch:   "main",
	}
}

var (
	gitStatsRe = regexp.MustCompile(`\+(\d+)\s*-(\d+)`)
	projectRe  = regexp.MustCompile(`\(([^)]+)\)`)
)

// Parser reconstructs a ScreenState from screen rows. It holds no state
// between calls; the logger only receives row-level parse warnings.
type Parser struct {
	layout Layout
	logger *log.Logger
}

// NewParser creates a parser for the given layout. A nil logger discards
// parse warnings.
func NewParser(layout Layout, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Parser{layout: layout, logger: logger}
}

// Parse derives a ScreenState from a screen snapshot.
func (p *Parser) Parse(scr *Screen) ScreenState {
	width, _ := scr.Size()
	return p.ParseLines(scr.Lines(), width)
}

// ParseLines derives a ScreenState from raw rows. It exists so the parser
// can be exercised against synthetic grids without a live session.
func (p *Parser) ParseLines(lines []string, width int) ScreenState {
	instances := p.parseInstances(lines, width)
	return ScreenState{
		Instances:    instances,
		Selected:     p.detectSelection(lines, width, len(instances)),
		Tab:          p.detectTab(lines),
		TabContent:   p.extractContent(lines, width),
		MenuItems:    p.parseMenu(lines),
		ErrorMessage: p.detectError(lines),
	}
}

// parseInstances scans the instance panel. Rows that fail the heuristics are
// skipped with a warning; a bad row never aborts the rest of the screen.
func (p *Parser) parseInstances(lines []string, width int) []InstanceInfo {
	panelWidth := width / p.layout.PanelDivisor
	var instances []InstanceInfo

	for _, line := range p.instanceRegion(lines) {
		if utf8.RuneCountInString(line) < 3 {
			continue
		}
		left := strings.TrimSpace(leftOf(line, panelWidth))
		if !p.isInstanceRow(left) {
			continue
		}
		info, ok := p.extractInstance(left, len(instances))
		if !ok {
			p.logger.Warn("skipping unparseable instance row", "row", left)
			continue
		}
		instances = append(instances, info)
	}
	return instances
}

// instanceRegion returns the rows between the header and footer
// reservations.
func (p *Parser) instanceRegion(lines []string) []string {
	lo := p.layout.HeaderRows
	hi := len(lines) - p.layout.FooterRows
	if lo >= hi {
		return nil
	}
	return lines[lo:hi]
}

// isInstanceRow reports whether the panel text carries a status glyph.
func (p *Parser) isInstanceRow(left string) bool {
	return strings.ContainsAny(left, string(p.layout.StatusGlyphs))
}

func (p *Parser) extractInstance(left string, index int) (InstanceInfo, bool) {
	info := InstanceInfo{
		Index:  index,
		Status: p.statusOf(left),
		Branch: p.layout.DefaultBranch,
	}

	name := left

	if m := gitStatsRe.FindStringSubmatch(left); m != nil {
		added, errA := strconv.Atoi(m[1])
		removed, errR := strconv.Atoi(m[2])
		if errA == nil && errR == nil {
			info.Stats = GitStats{Added: added, Removed: removed}
		}
		name = strings.Replace(name, m[0], "", 1)
	}

	if m := projectRe.FindStringSubmatch(left); m != nil {
		info.Project = m[1]
		name = strings.Replace(name, m[0], "", 1)
	}

	for _, g := range p.layout.StatusGlyphs {
		name = strings.ReplaceAll(name, string(g), "")
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), p.layout.SelectionPrefix)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return InstanceInfo{}, false
	}
	info.Name = runewidth.Truncate(name, p.layout.MaxNameLen, "")

	return info, true
}

// statusOf derives the status from the matched glyph plus context. The
// active glyph alone cannot distinguish Running from Ready; the UI spells
// out "Running" next to it when work is in flight.
func (p *Parser) statusOf(left string) Status {
	switch {
	case strings.ContainsRune(left, glyphActive):
		if strings.Contains(left, "Running") {
			return StatusRunning
		}
		return StatusReady
	case strings.ContainsRune(left, glyphPaused):
		return StatusPaused
	case strings.ContainsRune(left, glyphStopped):
		return StatusStopped
	default:
		return StatusUnknown
	}
}

// detectSelection finds the first row carrying a selection marker and maps
// it to an instance ordinal. A leading ">" counts anywhere; the block cursor
// counts only inside the instance panel, since the same glyph marks the
// active tab label in the content pane. No marker anywhere defaults to 0.
func (p *Parser) detectSelection(lines []string, width, instanceCount int) int {
	panelWidth := width / p.layout.PanelDivisor
	for row, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, p.layout.SelectionPrefix) ||
			strings.ContainsRune(leftOf(line, panelWidth), p.layout.CursorGlyph) {
			return p.rowToOrdinal(lines, width, row, instanceCount)
		}
	}
	return 0
}

// rowToOrdinal counts instance-qualifying rows preceding the marker row.
// When the marker sits on an instance row that count is its ordinal; when it
// sits elsewhere (a known accuracy gap of marker-based selection) the result
// is clamped to the nearest instance ordinal.
func (p *Parser) rowToOrdinal(lines []string, width, row, instanceCount int) int {
	panelWidth := width / p.layout.PanelDivisor
	lo := p.layout.HeaderRows
	hi := len(lines) - p.layout.FooterRows

	count := 0
	for i := lo; i < row && i < hi; i++ {
		if p.isInstanceRow(strings.TrimSpace(leftOf(lines[i], panelWidth))) {
			count++
		}
	}

	markerOnInstance := row >= lo && row < hi &&
		p.isInstanceRow(strings.TrimSpace(leftOf(lines[row], panelWidth)))
	if !markerOnInstance && count > 0 {
		count--
	}

	if instanceCount > 0 && count >= instanceCount {
		count = instanceCount - 1
	}
	if count < 0 || instanceCount == 0 {
		count = 0
	}
	return count
}

var tabLabels = []struct {
	label string
	tab   ActiveTab
}{
	{"Preview", TabPreview},
	{"Diff", TabDiff},
	{"Console", TabConsole},
}

// detectTab scans the top rows for the cursor glyph next to a tab label. All
// labels are usually visible at once, so the winner is the label closest
// after the cursor rather than the first label on the row.
func (p *Parser) detectTab(lines []string) ActiveTab {
	n := min(p.layout.TabScanRows, len(lines))
	for _, line := range lines[:n] {
		idx := strings.IndexRune(line, p.layout.CursorGlyph)
		if idx < 0 {
			continue
		}
		rest := line[idx:]

		best := TabPreview
		bestPos := -1
		for _, tl := range tabLabels {
			if pos := strings.Index(rest, tl.label); pos >= 0 && (bestPos < 0 || pos < bestPos) {
				best = tl.tab
				bestPos = pos
			}
		}
		if bestPos >= 0 {
			return best
		}
	}
	return TabPreview
}

// extractContent joins the content-pane portion of each row, which is
// everything beyond the instance panel.
func (p *Parser) extractContent(lines []string, width int) string {
	panelWidth := width / p.layout.PanelDivisor
	lo := p.layout.ContentTopRow
	hi := len(lines) - p.layout.FooterRows

	var content []string
	for i := lo; i < hi && i < len(lines); i++ {
		if utf8.RuneCountInString(lines[i]) > panelWidth {
			content = append(content, strings.TrimRight(rightOf(lines[i], panelWidth), " \t"))
		}
	}
	return strings.Join(content, "\n")
}

// parseMenu splits the bottom rows on separator glyphs and keeps short
// trimmed tokens as menu items.
func (p *Parser) parseMenu(lines []string) []string {
	var items []string
	for _, line := range lastRows(lines, p.layout.MenuRows) {
		if !strings.ContainsAny(line, string(p.layout.MenuSeparators)) {
			continue
		}
		for _, item := range strings.FieldsFunc(line, p.isMenuSeparator) {
			item = strings.TrimSpace(item)
			if item != "" && utf8.RuneCountInString(item) < p.layout.MaxNameLen {
				items = append(items, item)
			}
		}
	}
	return items
}

func (p *Parser) isMenuSeparator(r rune) bool {
	for _, sep := range p.layout.MenuSeparators {
		if r == sep {
			return true
		}
	}
	return false
}

// detectError scans the bottom rows for an error banner.
func (p *Parser) detectError(lines []string) string {
	for _, line := range lastRows(lines, p.layout.ErrorScanRows) {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// leftOf returns the first n display columns of a row. Glyphs are multi-byte
// so slicing happens on runes, not bytes.
func leftOf(line string, n int) string {
	r := []rune(line)
	if len(r) <= n {
		return line
	}
	return string(r[:n])
}

// rightOf returns everything past the first n display columns of a row.
func rightOf(line string, n int) string {
	r := []rune(line)
	if len(r) <= n {
		return ""
	}
	return string(r[n:])
}

func lastRows(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
