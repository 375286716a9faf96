// Package chatlist keeps a two-section chat list in sync with its data source.
//
// The Engine receives caller-declared mutations (insert, remove, commit,
// update) expressed as logical message indices, translates them to physical
// rows with rowindex, and issues the minimum set of row operations to a
// ListView. It also owns the read marker: a synthetic row placed next to the
// newest message of ours that the other side has read.
//
// All methods must be called from a single goroutine. The only asynchrony is
// continuations handed to the Scheduler, which observe engine state as it is
// when they fire.
package chatlist

import (
	"fmt"
	"log/slog"
	"time"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/rowindex"
)

// Default timings for continuations. The list view offers no completion
// signal, so these approximate its animation length.
const (
	DefaultScrollSettleDelay = 300 * time.Millisecond
	DefaultMoveSettleDelay   = 350 * time.Millisecond
)

// Options configures an Engine.
type Options struct {
	ScrollSettleDelay time.Duration
	MoveSettleDelay   time.Duration
	ReadDateLayout    string // time layout for the read marker label
	ReadLabel         string // fmt format with one %s for the formatted date
	// Strict panics on caller contract violations instead of logging them.
	Strict bool
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		ScrollSettleDelay: DefaultScrollSettleDelay,
		MoveSettleDelay:   DefaultMoveSettleDelay,
		ReadDateLayout:    "02/01/06 15:04",
		ReadLabel:         "Read %s",
		Strict:            debugBuild,
	}
}

// Engine reconciles data source mutations with a ListView.
type Engine struct {
	ds       DataSource
	delegate Delegate
	view     ListView
	sched    Scheduler
	opts     Options
	log      *slog.Logger

	layout rowindex.Layout

	firstLoadDone       bool
	readUpdateScheduled bool
	closed              bool
}

// New creates an engine. The data source, delegate and view may be attached
// later; until then operations degrade to no-ops and empty rows.
func New(ds DataSource, delegate Delegate, sched Scheduler, opts Options) *Engine {
	if opts.ReadLabel == "" {
		opts.ReadLabel = DefaultOptions().ReadLabel
	}
	if opts.ReadDateLayout == "" {
		opts.ReadDateLayout = DefaultOptions().ReadDateLayout
	}
	return &Engine{
		ds:       ds,
		delegate: delegate,
		sched:    sched,
		opts:     opts,
		log:      logger.WithComponent("chatlist"),
	}
}

// SetView attaches the list view driven by the engine.
func (e *Engine) SetView(v ListView) { e.view = v }

// SetDataSource replaces the data source. Call FullReload afterwards.
func (e *Engine) SetDataSource(ds DataSource) { e.ds = ds }

// SetDelegate replaces the delegate.
func (e *Engine) SetDelegate(d Delegate) { e.delegate = d }

// Close detaches the engine. Pending continuations become no-ops.
func (e *Engine) Close() {
	e.closed = true
	e.view = nil
}

// Layout returns a copy of the current index layout.
func (e *Engine) Layout() rowindex.Layout {
	l := e.layout
	if l.Read != nil {
		r := *l.Read
		l.Read = &r
	}
	return l
}

// ReadInfo returns the cached read marker position, if any.
func (e *Engine) ReadInfo() (rowindex.ReadInfo, bool) {
	if e.layout.Read == nil {
		return rowindex.ReadInfo{}, false
	}
	return *e.layout.Read, true
}

func (e *Engine) committedTotal() int {
	if e.ds == nil {
		return 0
	}
	return e.ds.CommittedCount()
}

func (e *Engine) pendingTotal() int {
	if e.ds == nil {
		return 0
	}
	return e.ds.PendingCount()
}

// violation handles a caller contract violation. It panics in strict mode and
// otherwise logs it; callers skip the operation either way.
func (e *Engine) violation(err error) {
	if e.opts.Strict {
		panic(err)
	}
	e.log.Warn("ignoring operation", "error", err)
}

func (e *Engine) shiftRead(at, by int) {
	if e.layout.Read != nil && at <= e.layout.Read.Index {
		e.layout.Read = &rowindex.ReadInfo{Index: e.layout.Read.Index + by, Date: e.layout.Read.Date}
	}
}

// InsertCommitted tells the engine that count messages were added to the
// committed section starting at logical index at (0 for the newest end).
func (e *Engine) InsertCommitted(count, at int, scrollToBottom bool, anim Animation) {
	if count <= 0 || e.ds == nil || e.closed {
		return
	}

	total := e.ds.CommittedCount()
	if delta := total - e.layout.Committed; delta != count {
		e.violation(perrors.CountMismatch("chatlist.InsertCommitted", count, delta))
		return
	}

	e.shiftRead(at, count)
	e.layout.Committed = total

	rows := make([]rowindex.Position, 0, count)
	for i := at + count - 1; i >= at; i-- {
		if p, ok := e.layout.Position(rowindex.NormalIndex(i)); ok {
			rows = append(rows, p)
		}
	}

	e.log.Debug("insert committed", "count", count, "at", at, "rows", len(rows), "total", total)
	if e.view != nil {
		e.view.InsertRows(rows, anim)
	}
	if scrollToBottom {
		e.scheduleScroll()
	}
}

// InsertPending tells the engine that count pending messages were added at
// the newest end of the pending section.
func (e *Engine) InsertPending(count int, scrollToBottom bool, anim Animation) {
	if count <= 0 || e.ds == nil || e.closed {
		return
	}

	total := e.ds.PendingCount()
	if delta := total - e.layout.Pending; delta != count {
		e.violation(perrors.CountMismatch("chatlist.InsertPending", count, delta))
		return
	}

	e.layout.Pending = total
	rows := make([]rowindex.Position, 0, count)
	for i := count - 1; i >= 0; i-- {
		if p, ok := e.layout.Position(rowindex.PendingIndex(i)); ok {
			rows = append(rows, p)
		}
	}

	e.log.Debug("insert pending", "count", count, "total", total)
	if e.view != nil {
		e.view.InsertRows(rows, anim)
	}
	if scrollToBottom {
		e.scheduleScroll()
	}
}

func (e *Engine) scheduleScroll() {
	if e.sched == nil {
		return
	}
	e.sched.After(e.opts.ScrollSettleDelay, func() {
		if e.closed {
			return
		}
		e.ScrollToBottom(true)
	})
}

// RemoveCommitted removes the committed message that was at logical index i.
// The data source must already have dropped it. Unknown indices are ignored.
func (e *Engine) RemoveCommitted(i int) {
	if e.closed {
		return
	}
	p, ok := e.layout.Position(rowindex.NormalIndex(i))
	if !ok {
		e.log.Debug("remove committed: index not materialized", "index", i)
		return
	}

	rows := []rowindex.Position{p}
	if read := e.layout.Read; read != nil {
		switch {
		case i < read.Index:
			e.layout.Read = &rowindex.ReadInfo{Index: read.Index - 1, Date: read.Date}
		case i == read.Index:
			// The marker's message is gone; drop the marker and look again.
			if rp, ok := e.layout.Position(rowindex.ReadIndex(read.Date)); ok {
				rows = append(rows, rp)
			}
			e.layout.Read = nil
			defer e.RequestReadInfoUpdate()
		}
	}
	e.layout.Committed = e.committedTotal()

	if e.view != nil {
		e.view.DeleteRows(rows, AnimationFade)
	}
}

// RemovePending removes the pending message that was at logical index i.
func (e *Engine) RemovePending(i int) {
	if e.closed {
		return
	}
	p, ok := e.layout.Position(rowindex.PendingIndex(i))
	if !ok {
		e.log.Debug("remove pending: index not materialized", "index", i)
		return
	}
	e.layout.Pending = e.pendingTotal()
	if e.view != nil {
		e.view.DeleteRows([]rowindex.Position{p}, AnimationFade)
	}
}

// CommitPending moves the pending message at logical index from into the
// committed section at logical index to.
func (e *Engine) CommitPending(from, to int) {
	if e.ds == nil || e.closed {
		return
	}

	prev := e.layout
	source, sourceOK := e.layout.Position(rowindex.PendingIndex(from))

	e.layout.Committed = e.ds.CommittedCount()
	e.shiftRead(to, 1)
	target, targetOK := e.layout.Position(rowindex.NormalIndex(to))

	// Nothing to move: the cached layout is left as it was.
	if !sourceOK || !targetOK {
		e.layout = prev
		e.log.Warn("cannot move pending message",
			"from", from, "to", to, "sourceOK", sourceOK, "targetOK", targetOK)
		return
	}

	e.layout.Pending = e.ds.PendingCount()

	e.log.Debug("commit pending", "from", from, "to", to, "source", source, "target", target)
	if e.view != nil {
		e.view.MoveRow(source, target)
	}

	// A move only relocates the row; refresh its content once it has landed.
	if e.sched == nil {
		return
	}
	e.sched.After(e.opts.MoveSettleDelay, func() {
		if e.closed || e.view == nil {
			return
		}
		if p, ok := e.layout.Position(rowindex.NormalIndex(to)); ok {
			e.view.ReloadRows([]rowindex.Position{p}, AnimationFade)
		}
	})
}

// UpdateCommitted refreshes the content of committed message i.
func (e *Engine) UpdateCommitted(i int) {
	e.reload(rowindex.NormalIndex(i))
}

// UpdatePending refreshes the content of pending message i.
func (e *Engine) UpdatePending(i int) {
	e.reload(rowindex.PendingIndex(i))
}

func (e *Engine) reload(idx rowindex.Index) {
	if e.closed {
		return
	}
	p, ok := e.layout.Position(idx)
	if !ok {
		e.log.Debug("update: index not materialized", "index", idx)
		return
	}
	if e.view != nil {
		e.view.ReloadRows([]rowindex.Position{p}, AnimationFade)
	}
}

// RequestReadInfoUpdate rescans the data source for the read marker at the
// end of the current batch of visual updates and moves, inserts or refreshes
// the marker row. Repeated requests within one batch run once.
func (e *Engine) RequestReadInfoUpdate() {
	if e.closed || e.readUpdateScheduled {
		return
	}
	if e.sched == nil {
		e.reconcileReadInfo()
		return
	}
	e.readUpdateScheduled = true
	e.sched.AtBatchEnd(func() {
		e.readUpdateScheduled = false
		if e.closed {
			return
		}
		e.reconcileReadInfo()
	})
}

func (e *Engine) reconcileReadInfo() {
	next, found := e.scanReadInfo()
	old := e.layout.Read

	switch {
	case old != nil && found:
		oldPos, _ := e.layout.Position(rowindex.ReadIndex(old.Date))

		// Date and index change in two steps so the reload addresses the row
		// where it currently is.
		if !old.Date.Equal(next.Date) {
			e.layout.Read = &rowindex.ReadInfo{Index: old.Index, Date: next.Date}
			if e.view != nil {
				e.view.ReloadRows([]rowindex.Position{oldPos}, AnimationFade)
			}
		}
		if old.Index != next.Index {
			e.layout.Read = &rowindex.ReadInfo{Index: next.Index, Date: next.Date}
			newPos, _ := e.layout.Position(rowindex.ReadIndex(next.Date))
			if e.view != nil {
				e.view.MoveRow(oldPos, newPos)
			}
		}

	case found:
		e.layout.Read = &next
		p, _ := e.layout.Position(rowindex.ReadIndex(next.Date))
		if e.view != nil {
			e.view.InsertRows([]rowindex.Position{p}, AnimationTop)
		}

	case old != nil:
		// Nothing qualifies any more. The marker stays where it was.
		e.log.Debug("read marker kept without a qualifying message", "index", old.Index)
	}
}

// scanReadInfo walks committed messages from the newest and returns the first
// of ours, other than annotations, that has a read timestamp.
func (e *Engine) scanReadInfo() (rowindex.ReadInfo, bool) {
	if e.ds == nil {
		return rowindex.ReadInfo{}, false
	}
	for i := 0; i < e.layout.Committed; i++ {
		msg := e.ds.CommittedMessage(i)
		if msg.IsAnnotation() || msg.Side != message.Mine {
			continue
		}
		if date, ok := e.ds.ReadTimestamp(i); ok {
			return rowindex.ReadInfo{Index: i, Date: date}, true
		}
	}
	return rowindex.ReadInfo{}, false
}

// FullReload discards all cached state, rebuilds it from the data source and
// redraws every row. The first reload that finds committed messages scrolls
// to the bottom without animation.
func (e *Engine) FullReload() {
	if e.closed {
		return
	}
	e.layout.Read = nil
	e.layout.Committed = e.committedTotal()
	e.layout.Pending = e.pendingTotal()
	if read, ok := e.scanReadInfo(); ok {
		e.layout.Read = &read
	}

	e.log.Debug("full reload", "committed", e.layout.Committed, "pending", e.layout.Pending, "read", e.layout.Read != nil)
	if e.view != nil {
		e.view.ReloadData()
	}

	if !e.firstLoadDone && e.layout.Committed > 0 {
		e.firstLoadDone = true
		e.ScrollToBottom(false)
	}
}

// ScrollToBottom scrolls to the newest row: the newest pending message if
// there is one, otherwise the bottom row of the committed section.
func (e *Engine) ScrollToBottom(animated bool) {
	if e.view == nil {
		return
	}
	if p, ok := e.layout.Position(rowindex.PendingIndex(0)); ok {
		e.view.ScrollToRow(p, animated)
		return
	}
	if n := e.layout.RowCount(rowindex.SectionCommitted); n > 0 {
		e.view.ScrollToRow(rowindex.Position{Section: rowindex.SectionCommitted, Row: n - 1}, animated)
	}
}

// RowCount returns the physical row count of a section, refreshing the cached
// count from the data source first.
func (e *Engine) RowCount(s rowindex.Section) int {
	if s == rowindex.SectionPending {
		e.layout.Pending = e.pendingTotal()
	} else {
		e.layout.Committed = e.committedTotal()
	}
	return e.layout.RowCount(s)
}

// Row resolves the message shown at a physical position.
func (e *Engine) Row(p rowindex.Position) Row {
	if e.ds == nil || !e.layout.InRange(p) {
		return Row{Placeholder: true}
	}

	idx := e.layout.Logical(p)
	row := Row{Index: idx}
	switch idx.Kind {
	case rowindex.ReadAnnotation:
		label := fmt.Sprintf(e.opts.ReadLabel, idx.Date.Format(e.opts.ReadDateLayout))
		row.Message = message.NewReadMarker(label, idx.Date)
	case rowindex.Normal:
		row.Message = e.ds.CommittedMessage(idx.Value)
	case rowindex.Pending:
		row.Message = e.ds.PendingMessage(idx.Value)
		row.Translucent = true
	}

	if e.delegate != nil {
		e.delegate.OnBeforePrepareRow(row.Message)
	}
	return row
}

// Tap forwards a tap on a physical row to the delegate. Taps on the read
// marker are ignored.
func (e *Engine) Tap(p rowindex.Position) {
	if e.delegate == nil || !e.layout.InRange(p) {
		return
	}
	switch idx := e.layout.Logical(p); idx.Kind {
	case rowindex.Normal:
		e.delegate.OnMessageTapped(idx.Value)
	case rowindex.Pending:
		e.delegate.OnPendingMessageTapped(idx.Value)
	}
}

// SubmitText forwards text entered in the input bar to the delegate.
func (e *Engine) SubmitText(text string) {
	if e.delegate == nil {
		return
	}
	e.delegate.OnUserSubmittedText(text)
}
