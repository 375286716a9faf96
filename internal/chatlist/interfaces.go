package chatlist

import (
	"time"

	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/rowindex"
)

// DataSource supplies messages. Indices count from the newest message (0).
// When the engine is told about a mutation the data source must already
// reflect the post-mutation state.
type DataSource interface {
	CommittedCount() int
	CommittedMessage(index int) message.Message
	// ReadTimestamp returns when the committed message at index was read,
	// or false if it has not been read.
	ReadTimestamp(index int) (time.Time, bool)
	PendingCount() int
	PendingMessage(index int) message.Message
}

// Delegate receives notifications from the chat log. Every method may be a
// no-op.
type Delegate interface {
	// OnBeforePrepareRow is called right before a message row is rendered.
	OnBeforePrepareRow(msg message.Message)
	OnMessageTapped(index int)
	OnPendingMessageTapped(index int)
	OnUserSubmittedText(text string)
	// EstimatedRowHeight lets the host estimate heights of committed rows in
	// terminal lines. Return false to use the built-in heuristic.
	EstimatedRowHeight(index int) (int, bool)
}

// Animation selects how a row change is presented.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationFade
	AnimationTop
	AnimationBottom
	AnimationLeft
	AnimationRight
)

func (a Animation) String() string {
	switch a {
	case AnimationFade:
		return "fade"
	case AnimationTop:
		return "top"
	case AnimationBottom:
		return "bottom"
	case AnimationLeft:
		return "left"
	case AnimationRight:
		return "right"
	default:
		return "none"
	}
}

// ListView is the scrolling list the engine drives. It mirrors the surface of
// a table view: row mutations are issued in physical coordinates and the view
// queries the engine (as a RowSource) for counts and content.
type ListView interface {
	InsertRows(rows []rowindex.Position, anim Animation)
	DeleteRows(rows []rowindex.Position, anim Animation)
	// MoveRow relocates a row without refreshing its content.
	MoveRow(from, to rowindex.Position)
	ReloadRows(rows []rowindex.Position, anim Animation)
	ReloadData()
	ScrollToRow(row rowindex.Position, animated bool)
}

// Scheduler runs continuations on the same goroutine as the engine.
type Scheduler interface {
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func())
	// AtBatchEnd runs fn once the current batch of visual updates finishes.
	AtBatchEnd(fn func())
}

// RowSource is what a ListView needs to lay out and render rows.
type RowSource interface {
	RowCount(s rowindex.Section) int
	Row(p rowindex.Position) Row
	EstimatedHeight(p rowindex.Position, width int) int
}

// Row is a resolved physical row ready for rendering.
type Row struct {
	Index       rowindex.Index
	Message     message.Message
	Translucent bool // pending rows render dimmed
	Placeholder bool // no data source attached
}
