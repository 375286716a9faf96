package chatlist

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/rowindex"
)

// Geometry shared by the height heuristic and the terminal renderer.
const (
	BubbleChrome     = 2 // rounded border, top and bottom
	BubbleHPad       = 4 // border and one column of padding on each side
	MinBubbleWidth   = 12
	MaxImageRows     = 8
	ReadMarkerHeight = 1
	AnnotationHeight = 1
)

// BubbleWidth returns the widest a bubble may be in a list of the given width.
func BubbleWidth(width int) int {
	w := width * 3 / 4
	if w < MinBubbleWidth {
		w = MinBubbleWidth
	}
	if w > width && width > 0 {
		w = width
	}
	return w
}

// TextColumns returns the columns available to text inside a bubble.
func TextColumns(width int) int {
	cols := BubbleWidth(width) - BubbleHPad
	if cols < 1 {
		cols = 1
	}
	return cols
}

// WrappedLines estimates how many lines text occupies when wrapped at cols.
func WrappedLines(text string, cols int) int {
	if cols < 1 {
		cols = 1
	}
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		w := runewidth.StringWidth(line)
		if w == 0 {
			lines++
			continue
		}
		lines += (w + cols - 1) / cols
	}
	return lines
}

// ImageCells fits a w x h pixel image into at most maxCols x maxRows terminal
// cells, where each cell shows one pixel column and two pixel rows. Images
// are never scaled up.
func ImageCells(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	scale := 1.0
	if sx := float64(maxCols) / float64(w); sx < scale {
		scale = sx
	}
	if sy := float64(maxRows*2) / float64(h); sy < scale {
		scale = sy
	}
	cols = int(float64(w) * scale)
	ph := int(float64(h) * scale)
	if cols < 1 {
		cols = 1
	}
	if ph < 1 {
		ph = 1
	}
	return cols, (ph + 1) / 2
}

// MessageHeight estimates the rendered height of msg in a list of the given
// width, in terminal lines.
func MessageHeight(msg message.Message, width int) int {
	footer := 0
	if msg.ShowTimestamp || msg.ShowsError() {
		footer = 1
	}

	switch msg.Kind {
	case message.KindReadMarker:
		return ReadMarkerHeight
	case message.KindAnnotation:
		return AnnotationHeight
	case message.KindImage:
		rows := 1
		if msg.Image != nil {
			b := msg.Image.Bounds()
			_, rows = ImageCells(b.Dx(), b.Dy(), TextColumns(width), MaxImageRows)
		}
		return rows + BubbleChrome + footer
	}

	if msg.IsBigEmoji() {
		return WrappedLines(msg.Text, BubbleWidth(width)) + footer
	}
	return WrappedLines(msg.Text, TextColumns(width)) + BubbleChrome + footer
}

// EstimatedHeight returns a cheap height estimate for the row at p. Committed
// rows ask the delegate first.
func (e *Engine) EstimatedHeight(p rowindex.Position, width int) int {
	if e.ds == nil || !e.layout.InRange(p) {
		return 1
	}

	idx := e.layout.Logical(p)
	var msg message.Message
	switch idx.Kind {
	case rowindex.ReadAnnotation:
		return ReadMarkerHeight
	case rowindex.Normal:
		if e.delegate != nil {
			if h, ok := e.delegate.EstimatedRowHeight(idx.Value); ok && h > 0 {
				return h
			}
		}
		msg = e.ds.CommittedMessage(idx.Value)
	case rowindex.Pending:
		msg = e.ds.PendingMessage(idx.Value)
	}
	return MessageHeight(msg, width)
}
