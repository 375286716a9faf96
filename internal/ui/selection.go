package ui

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/rowindex"
)

// Row selection
//
// One row at a time can be selected, either with the keyboard or by
// clicking. Selection coordinates are physical positions and are adjusted as
// rows are inserted, deleted and moved around the selected one. The highlight
// is painted over the rendered viewport with an ultraviolet screen buffer, so
// row renderings stay cacheable.

// Select selects p and scrolls it into view.
func (l *List) Select(p rowindex.Position) bool {
	if l.slotAt(p) == nil {
		return false
	}
	l.selected = p
	l.hasSelected = true
	l.reveal(p)
	return true
}

// ClearSelection clears the selection.
func (l *List) ClearSelection() {
	l.hasSelected = false
}

// Selected returns the selected position.
func (l *List) Selected() (rowindex.Position, bool) {
	return l.selected, l.hasSelected
}

// SelectedRow resolves the selected row from the source.
func (l *List) SelectedRow() (chatlist.Row, bool) {
	if !l.hasSelected || l.source == nil || l.slotAt(l.selected) == nil {
		return chatlist.Row{}, false
	}
	return l.source.Row(l.selected), true
}

// flat converts between a position and its index in display order.
func (l *List) flat(p rowindex.Position) int {
	if p.Section == rowindex.SectionPending {
		return len(l.sections[rowindex.SectionCommitted]) + p.Row
	}
	return p.Row
}

func (l *List) unflat(i int) (rowindex.Position, bool) {
	committed := len(l.sections[rowindex.SectionCommitted])
	switch {
	case i < 0:
		return rowindex.Position{}, false
	case i < committed:
		return rowindex.Position{Section: rowindex.SectionCommitted, Row: i}, true
	case i < committed+len(l.sections[rowindex.SectionPending]):
		return rowindex.Position{Section: rowindex.SectionPending, Row: i - committed}, true
	}
	return rowindex.Position{}, false
}

// SelectPrev moves the selection one row up. With no selection it selects
// the bottom row.
func (l *List) SelectPrev() bool {
	if !l.hasSelected {
		return l.selectLast()
	}
	p, ok := l.unflat(l.flat(l.selected) - 1)
	if !ok {
		return false
	}
	return l.Select(p)
}

// SelectNext moves the selection one row down.
func (l *List) SelectNext() bool {
	if !l.hasSelected {
		return l.selectLast()
	}
	p, ok := l.unflat(l.flat(l.selected) + 1)
	if !ok {
		return false
	}
	return l.Select(p)
}

func (l *List) selectLast() bool {
	n := len(l.sections[0]) + len(l.sections[1])
	p, ok := l.unflat(n - 1)
	if !ok {
		return false
	}
	return l.Select(p)
}

// reveal scrolls the minimum distance that makes p fully visible.
func (l *List) reveal(p rowindex.Position) {
	if l.height <= 0 {
		return
	}
	spans := l.spans()
	offset := l.viewport.YOffset()
	for _, sp := range spans {
		if sp.pos != p {
			continue
		}
		switch {
		case sp.top < offset:
			offset = sp.top
		case sp.top+sp.height > offset+l.height:
			offset = sp.top + sp.height - l.height
		}
		l.viewport.SetYOffset(l.clampOffset(offset, totalHeight(spans)))
		break
	}
	l.refresh()
}

// FlashSelection briefly paints the selected row with the copy highlight.
func (l *List) FlashSelection() {
	if l.hasSelected {
		l.copyFlashUntil = l.now().Add(CopyFlashDuration)
	}
}

// selectionSpan returns the visible line range of the selected row.
func (l *List) selectionSpan() (start, end int, ok bool) {
	if !l.hasSelected {
		return 0, 0, false
	}
	offset := l.viewport.YOffset()
	for _, sp := range l.spans() {
		if sp.pos == l.selected {
			start = max(sp.top-offset, 0)
			end = min(sp.top+sp.height-offset, l.height)
			return start, end, start < end
		}
	}
	return 0, 0, false
}

// selectionView applies selection highlighting to the rendered view using
// ultraviolet. Normal selection only fills blank cells so bubbles keep their
// colors; the copy flash repaints the whole row.
func (l *List) selectionView(view string) string {
	startLine, endLine, ok := l.selectionSpan()
	if !ok {
		return view
	}

	width := l.viewport.Width()
	height := l.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	// Create screen buffer from the rendered view
	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	flash := l.now().Before(l.copyFlashUntil)
	var selBg, selFg color.Color
	if flash {
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		selBg = TextSelectionStyle.GetBackground()
	}

	for y := startLine; y < endLine && y < height; y++ {
		for x := 0; x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell == nil {
				continue
			}
			if !flash && cell.Style.Bg != nil {
				continue
			}
			cell = cell.Clone()
			cell.Style.Bg = selBg
			if flash {
				cell.Style.Fg = selFg
			}
			scr.SetCell(x, y, cell)
		}
	}

	return scr.Render()
}
