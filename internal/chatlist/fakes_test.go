package chatlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/rowindex"
)

var (
	t0       = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	readAt   = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	readLate = time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
)

// entry is a committed message with its optional read time.
type entry struct {
	msg  message.Message
	read *time.Time
}

// sliceSource is an in-memory DataSource. Index 0 of both slices is the newest
// message.
type sliceSource struct {
	committed []entry
	pending   []message.Message
}

func (s *sliceSource) CommittedCount() int { return len(s.committed) }
func (s *sliceSource) CommittedMessage(i int) message.Message {
	return s.committed[i].msg
}
func (s *sliceSource) ReadTimestamp(i int) (time.Time, bool) {
	if r := s.committed[i].read; r != nil {
		return *r, true
	}
	return time.Time{}, false
}
func (s *sliceSource) PendingCount() int                    { return len(s.pending) }
func (s *sliceSource) PendingMessage(i int) message.Message { return s.pending[i] }

func (s *sliceSource) prependCommitted(entries ...entry) {
	s.committed = append(append([]entry{}, entries...), s.committed...)
}

func mine(text string) entry   { return entry{msg: message.NewText(text, message.Mine, t0)} }
func theirs(text string) entry { return entry{msg: message.NewText(text, message.Theirs, t0)} }
func readMine(text string, at time.Time) entry {
	e := mine(text)
	e.read = &at
	return e
}

// viewOp is one recorded ListView call.
type viewOp struct {
	kind     string
	rows     []rowindex.Position
	from, to rowindex.Position
	anim     Animation
	animated bool
}

func (o viewOp) String() string {
	switch o.kind {
	case "move":
		return fmt.Sprintf("move %v->%v", o.from, o.to)
	case "scroll":
		return fmt.Sprintf("scroll %v animated=%v", o.to, o.animated)
	default:
		parts := make([]string, len(o.rows))
		for i, r := range o.rows {
			parts[i] = r.String()
		}
		return fmt.Sprintf("%s [%s] %s", o.kind, strings.Join(parts, " "), o.anim)
	}
}

// recordingView is a ListView that records every call.
type recordingView struct {
	ops []viewOp
}

func (v *recordingView) InsertRows(rows []rowindex.Position, anim Animation) {
	v.ops = append(v.ops, viewOp{kind: "insert", rows: rows, anim: anim})
}

func (v *recordingView) DeleteRows(rows []rowindex.Position, anim Animation) {
	v.ops = append(v.ops, viewOp{kind: "delete", rows: rows, anim: anim})
}

func (v *recordingView) MoveRow(from, to rowindex.Position) {
	v.ops = append(v.ops, viewOp{kind: "move", from: from, to: to})
}

func (v *recordingView) ReloadRows(rows []rowindex.Position, anim Animation) {
	v.ops = append(v.ops, viewOp{kind: "reload", rows: rows, anim: anim})
}

func (v *recordingView) ReloadData() {
	v.ops = append(v.ops, viewOp{kind: "reloadData"})
}

func (v *recordingView) ScrollToRow(row rowindex.Position, animated bool) {
	v.ops = append(v.ops, viewOp{kind: "scroll", to: row, animated: animated})
}

func (v *recordingView) reset() { v.ops = nil }

func (v *recordingView) count(kind string) int {
	n := 0
	for _, op := range v.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

type timer struct {
	d  time.Duration
	fn func()
}

// manualScheduler queues continuations until the test fires them.
type manualScheduler struct {
	timers []timer
	batch  []func()
}

func (s *manualScheduler) After(d time.Duration, fn func()) {
	s.timers = append(s.timers, timer{d: d, fn: fn})
}

func (s *manualScheduler) AtBatchEnd(fn func()) {
	s.batch = append(s.batch, fn)
}

func (s *manualScheduler) fireTimers() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		t.fn()
	}
}

func (s *manualScheduler) endBatch() {
	batch := s.batch
	s.batch = nil
	for _, fn := range batch {
		fn()
	}
}

// recordingDelegate records notifications.
type recordingDelegate struct {
	prepared  []message.Message
	tapped    []int
	tappedPen []int
	submitted []string
	estimates map[int]int
}

func (d *recordingDelegate) OnBeforePrepareRow(msg message.Message) {
	d.prepared = append(d.prepared, msg)
}
func (d *recordingDelegate) OnMessageTapped(i int)        { d.tapped = append(d.tapped, i) }
func (d *recordingDelegate) OnPendingMessageTapped(i int) { d.tappedPen = append(d.tappedPen, i) }
func (d *recordingDelegate) OnUserSubmittedText(text string) {
	d.submitted = append(d.submitted, text)
}
func (d *recordingDelegate) EstimatedRowHeight(i int) (int, bool) {
	h, ok := d.estimates[i]
	return h, ok
}

type harness struct {
	ds       *sliceSource
	view     *recordingView
	sched    *manualScheduler
	delegate *recordingDelegate
	engine   *Engine
}

func newHarness(ds *sliceSource) *harness {
	h := &harness{
		ds:       ds,
		view:     &recordingView{},
		sched:    &manualScheduler{},
		delegate: &recordingDelegate{},
	}
	opts := DefaultOptions()
	opts.Strict = true
	h.engine = New(ds, h.delegate, h.sched, opts)
	h.engine.SetView(h.view)
	return h
}

// loaded returns a harness after an initial full reload, with the recorded
// operations cleared.
func loaded(ds *sliceSource) *harness {
	h := newHarness(ds)
	h.engine.FullReload()
	h.view.reset()
	return h
}

func pos(s rowindex.Section, row int) rowindex.Position {
	return rowindex.Position{Section: s, Row: row}
}

func c(row int) rowindex.Position { return pos(rowindex.SectionCommitted, row) }
func p(row int) rowindex.Position { return pos(rowindex.SectionPending, row) }
