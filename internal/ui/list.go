package ui

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/rowindex"
)

// listFlashTickMsg advances row highlight animations.
type listFlashTickMsg struct {
	owner *List
}

// slot is the list's record of one physical row.
type slot struct {
	rendered   string
	height     int
	measured   bool // rendered matches the row's current content
	flashed    bool // rendered with the highlight
	flashUntil time.Time
}

// span locates a row in the composed content.
type span struct {
	pos    rowindex.Position
	slot   *slot
	top    int
	height int
}

// List is a scrolling two-section list of chat rows. It implements
// chatlist.ListView: row mutations arrive in physical coordinates and the
// list pulls counts and content from its RowSource.
//
// Only rows near the visible window are rendered. Every other row occupies
// its estimated height until it scrolls into range.
type List struct {
	source   chatlist.RowSource
	sections [2][]*slot
	viewport viewport.Model
	width    int
	height   int

	timeLayout string

	selected       rowindex.Position
	hasSelected    bool
	copyFlashUntil time.Time

	scrollTarget *rowindex.Position
	tickInFlight bool

	now func() time.Time
	log *slog.Logger
}

// NewList creates an empty list.
func NewList() *List {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &List{
		viewport:   vp,
		timeLayout: DefaultTimeLayout,
		now:        time.Now,
		log:        logger.WithComponent("list"),
	}
}

// SetSource attaches the row source the list renders from.
func (l *List) SetSource(src chatlist.RowSource) {
	l.source = src
}

// SetTimeLayout sets the layout of the time label under bubbles.
func (l *List) SetTimeLayout(layout string) {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	l.timeLayout = layout
	l.invalidate()
	l.refresh()
}

// SetSize sets the viewport dimensions. A width change re-renders every row.
func (l *List) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	wasAtBottom := l.viewport.AtBottom()

	if width != l.width {
		l.width = width
		l.invalidate()
	}
	l.height = height
	l.viewport.SetWidth(width)
	l.viewport.SetHeight(height)

	l.refresh()
	if wasAtBottom {
		l.viewport.GotoBottom()
		l.refresh()
	}
}

// Width returns the list width.
func (l *List) Width() int { return l.width }

// Height returns the list height.
func (l *List) Height() int { return l.height }

// invalidate drops all renderings and re-estimates heights.
func (l *List) invalidate() {
	for s := range l.sections {
		for row, sl := range l.sections[s] {
			sl.measured = false
			sl.height = l.estimate(rowindex.Position{Section: rowindex.Section(s), Row: row})
		}
	}
}

func (l *List) estimate(p rowindex.Position) int {
	if l.source == nil || l.width <= 0 {
		return 1
	}
	if h := l.source.EstimatedHeight(p, l.width); h > 0 {
		return h
	}
	return 1
}

func (l *List) newSlot(p rowindex.Position, anim chatlist.Animation) *slot {
	sl := &slot{height: l.estimate(p)}
	if anim != chatlist.AnimationNone {
		sl.flashUntil = l.now().Add(AnimationDuration)
	}
	return sl
}

func sortPositions(rows []rowindex.Position, desc bool) []rowindex.Position {
	out := append([]rowindex.Position(nil), rows...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Section != b.Section {
			return (a.Section < b.Section) != desc
		}
		return (a.Row < b.Row) != desc
	})
	return out
}

func validSection(s rowindex.Section) bool {
	return s == rowindex.SectionCommitted || s == rowindex.SectionPending
}

// InsertRows inserts rows given in post-insert coordinates.
func (l *List) InsertRows(rows []rowindex.Position, anim chatlist.Animation) {
	for _, p := range sortPositions(rows, false) {
		if !validSection(p.Section) {
			continue
		}
		list := l.sections[p.Section]
		row := min(max(p.Row, 0), len(list))
		list = append(list, nil)
		copy(list[row+1:], list[row:])
		list[row] = l.newSlot(rowindex.Position{Section: p.Section, Row: row}, anim)
		l.sections[p.Section] = list

		if l.hasSelected && l.selected.Section == p.Section && l.selected.Row >= row {
			l.selected.Row++
		}
	}
	l.verify("insert")
	l.refresh()
}

// DeleteRows removes rows given in pre-delete coordinates.
func (l *List) DeleteRows(rows []rowindex.Position, anim chatlist.Animation) {
	for _, p := range sortPositions(rows, true) {
		if !validSection(p.Section) {
			continue
		}
		list := l.sections[p.Section]
		if p.Row < 0 || p.Row >= len(list) {
			continue
		}
		l.sections[p.Section] = append(list[:p.Row], list[p.Row+1:]...)

		if l.hasSelected && l.selected.Section == p.Section {
			switch {
			case l.selected.Row == p.Row:
				l.hasSelected = false
			case l.selected.Row > p.Row:
				l.selected.Row--
			}
		}
	}
	l.verify("delete")
	l.refresh()
}

// MoveRow relocates a row, keeping its rendering.
func (l *List) MoveRow(from, to rowindex.Position) {
	if !validSection(from.Section) || !validSection(to.Section) {
		return
	}
	src := l.sections[from.Section]
	if from.Row < 0 || from.Row >= len(src) {
		l.log.Warn("move from missing row", "from", from, "to", to)
		l.verify("move")
		l.refresh()
		return
	}
	sl := src[from.Row]
	l.sections[from.Section] = append(src[:from.Row], src[from.Row+1:]...)
	moved := l.hasSelected && l.selected == from
	if l.hasSelected && !moved && l.selected.Section == from.Section && l.selected.Row > from.Row {
		l.selected.Row--
	}

	dst := l.sections[to.Section]
	row := min(max(to.Row, 0), len(dst))
	dst = append(dst, nil)
	copy(dst[row+1:], dst[row:])
	dst[row] = sl
	l.sections[to.Section] = dst

	switch {
	case moved:
		l.selected = rowindex.Position{Section: to.Section, Row: row}
	case l.hasSelected && l.selected.Section == to.Section && l.selected.Row >= row:
		l.selected.Row++
	}
	l.verify("move")
	l.refresh()
}

// ReloadRows re-renders rows.
func (l *List) ReloadRows(rows []rowindex.Position, anim chatlist.Animation) {
	for _, p := range rows {
		sl := l.slotAt(p)
		if sl == nil {
			continue
		}
		sl.measured = false
		if anim != chatlist.AnimationNone {
			sl.flashUntil = l.now().Add(AnimationDuration)
		}
	}
	l.verify("reload")
	l.refresh()
}

// ReloadData rebuilds every row from the source.
func (l *List) ReloadData() {
	l.rebuild(rowindex.SectionCommitted)
	l.rebuild(rowindex.SectionPending)
	if l.hasSelected && l.slotAt(l.selected) == nil {
		l.hasSelected = false
	}
	l.refresh()
}

// ScrollToRow scrolls so the bottom edge of the row meets the bottom of the
// viewport. Scrolling is immediate either way.
func (l *List) ScrollToRow(p rowindex.Position, animated bool) {
	if l.slotAt(p) == nil {
		return
	}
	l.scrollTarget = &p
	l.refresh()
}

func (l *List) rebuild(s rowindex.Section) {
	n := 0
	if l.source != nil {
		n = l.source.RowCount(s)
	}
	list := make([]*slot, n)
	for row := range list {
		list[row] = &slot{height: l.estimate(rowindex.Position{Section: s, Row: row})}
	}
	l.sections[s] = list
}

// verify compares slot counts with the source after a mutation. A mismatch
// means the caller's announcements and the data diverged; the section is
// rebuilt from scratch.
func (l *List) verify(op string) {
	if l.source == nil {
		return
	}
	for _, s := range []rowindex.Section{rowindex.SectionCommitted, rowindex.SectionPending} {
		want := l.source.RowCount(s)
		if got := len(l.sections[s]); got != want {
			l.log.Warn("row count mismatch, rebuilding section",
				"op", op, "section", s, "rows", got, "source", want)
			l.rebuild(s)
			if l.hasSelected && l.selected.Section == s {
				l.hasSelected = false
			}
		}
	}
}

func (l *List) slotAt(p rowindex.Position) *slot {
	if !validSection(p.Section) {
		return nil
	}
	list := l.sections[p.Section]
	if p.Row < 0 || p.Row >= len(list) {
		return nil
	}
	return list[p.Row]
}

// RowCount returns the number of rows the list holds in a section.
func (l *List) RowCount(s rowindex.Section) int {
	if !validSection(s) {
		return 0
	}
	return len(l.sections[s])
}

// spans lays out all rows top to bottom: committed, then pending.
func (l *List) spans() []span {
	out := make([]span, 0, len(l.sections[0])+len(l.sections[1]))
	top := 0
	for s := range l.sections {
		for row, sl := range l.sections[s] {
			out = append(out, span{
				pos:    rowindex.Position{Section: rowindex.Section(s), Row: row},
				slot:   sl,
				top:    top,
				height: sl.height,
			})
			top += sl.height
		}
	}
	return out
}

func totalHeight(spans []span) int {
	if len(spans) == 0 {
		return 0
	}
	last := spans[len(spans)-1]
	return last.top + last.height
}

func (l *List) clampOffset(offset, total int) int {
	if maxOffset := total - l.height; offset > maxOffset {
		offset = maxOffset
	}
	return max(offset, 0)
}

// offsetFor returns the offset that puts the bottom of p at the bottom of the
// viewport.
func (l *List) offsetFor(spans []span, p rowindex.Position) (int, bool) {
	for _, sp := range spans {
		if sp.pos == p {
			return l.clampOffset(sp.top+sp.height-l.height, totalHeight(spans)), true
		}
	}
	return 0, false
}

// render draws the rows overlapping [from, to) that are out of date.
func (l *List) render(spans []span, from, to int) {
	now := l.now()
	for _, sp := range spans {
		if sp.top+sp.height <= from || sp.top >= to {
			continue
		}
		if sp.slot.measured {
			continue
		}
		flash := now.Before(sp.slot.flashUntil)
		var row chatlist.Row
		if l.source != nil {
			row = l.source.Row(sp.pos)
		} else {
			row = chatlist.Row{Placeholder: true}
		}
		rendered := RenderRow(row, RenderOptions{Width: l.width, TimeLayout: l.timeLayout, Flash: flash})
		sp.slot.rendered = rendered
		sp.slot.height = max(lipgloss.Height(rendered), 1)
		sp.slot.measured = true
		sp.slot.flashed = flash
	}
}

// refresh renders the rows around the viewport and rebuilds its content.
func (l *List) refresh() {
	if l.width <= 0 || l.height <= 0 {
		return
	}

	spans := l.spans()
	offset := l.viewport.YOffset()
	if l.scrollTarget != nil {
		if o, ok := l.offsetFor(spans, *l.scrollTarget); ok {
			offset = o
		}
	}

	l.render(spans, offset-l.height, offset+2*l.height)
	spans = l.spans()

	if l.scrollTarget != nil {
		if o, ok := l.offsetFor(spans, *l.scrollTarget); ok {
			offset = o
		}
		l.scrollTarget = nil
	}
	offset = l.clampOffset(offset, totalHeight(spans))

	l.viewport.SetContent(compose(spans))
	l.viewport.SetYOffset(offset)
}

func compose(spans []span) string {
	var sb strings.Builder
	for i, sp := range spans {
		if i > 0 {
			sb.WriteString("\n")
		}
		if sp.slot.measured {
			sb.WriteString(sp.slot.rendered)
			continue
		}
		sb.WriteString(strings.Repeat("\n", sp.height-1))
	}
	return sb.String()
}

// RowAt maps a line of the visible viewport to the row drawn there.
func (l *List) RowAt(y int) (rowindex.Position, bool) {
	if y < 0 || y >= l.height {
		return rowindex.Position{}, false
	}
	line := l.viewport.YOffset() + y
	for _, sp := range l.spans() {
		if line >= sp.top && line < sp.top+sp.height {
			return sp.pos, true
		}
	}
	return rowindex.Position{}, false
}

// animating reports whether any row or the copy flash is highlighted.
func (l *List) animating() bool {
	now := l.now()
	if now.Before(l.copyFlashUntil) {
		return true
	}
	for s := range l.sections {
		for _, sl := range l.sections[s] {
			if sl.flashed || now.Before(sl.flashUntil) {
				return true
			}
		}
	}
	return false
}

// Cmd returns the tick command that drives highlight animations, if one is
// needed and not already scheduled.
func (l *List) Cmd() tea.Cmd {
	if l.tickInFlight || !l.animating() {
		return nil
	}
	l.tickInFlight = true
	return tea.Tick(FlashFrameInterval, func(time.Time) tea.Msg {
		return listFlashTickMsg{owner: l}
	})
}

// expireFlashes re-renders rows whose highlight has ended.
func (l *List) expireFlashes() {
	now := l.now()
	for s := range l.sections {
		for _, sl := range l.sections[s] {
			if sl.flashed && !now.Before(sl.flashUntil) {
				sl.measured = false
			}
		}
	}
	l.refresh()
}

// Update handles scrolling input and animation ticks.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listFlashTickMsg:
		if msg.owner != l {
			return nil
		}
		l.tickInFlight = false
		l.expireFlashes()
		return l.Cmd()
	}

	before := l.viewport.YOffset()
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	if l.viewport.YOffset() != before {
		l.refresh()
	}
	return cmd
}

// ScrollBy scrolls the viewport by n lines, negative for up.
func (l *List) ScrollBy(n int) {
	if n < 0 {
		l.viewport.ScrollUp(-n)
	} else {
		l.viewport.ScrollDown(n)
	}
	l.refresh()
}

// GotoTop scrolls to the first line.
func (l *List) GotoTop() {
	l.viewport.SetYOffset(0)
	l.refresh()
}

// GotoBottom scrolls to the last line.
func (l *List) GotoBottom() {
	n := len(l.sections[0]) + len(l.sections[1])
	if p, ok := l.unflat(n - 1); ok {
		l.scrollTarget = &p
	}
	l.refresh()
}

// AtBottom reports whether the viewport shows the last line.
func (l *List) AtBottom() bool {
	return l.viewport.AtBottom()
}

// View renders the visible window with the selected row highlighted.
func (l *List) View() string {
	return l.selectionView(l.viewport.View())
}
