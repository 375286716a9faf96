package chatlist

import (
	"testing"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/rowindex"
)

func samePositions(a, b []rowindex.Position) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[rowindex.Position]int{}
	for _, x := range a {
		seen[x]++
	}
	for _, x := range b {
		seen[x]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

func expectOps(t *testing.T, v *recordingView, want ...string) {
	t.Helper()
	if len(v.ops) != len(want) {
		t.Fatalf("got %d ops %v, want %v", len(v.ops), v.ops, want)
	}
	for i, op := range v.ops {
		if op.String() != want[i] {
			t.Errorf("op %d = %q, want %q", i, op.String(), want[i])
		}
	}
}

func expectRead(t *testing.T, e *Engine, index int) {
	t.Helper()
	info, ok := e.ReadInfo()
	if !ok {
		t.Fatalf("no read info, want index %d", index)
	}
	if info.Index != index {
		t.Errorf("read index = %d, want %d", info.Index, index)
	}
}

func TestFullReload_FindsReadMarker(t *testing.T) {
	ds := &sliceSource{committed: []entry{
		theirs("c0"), mine("c1"), readMine("c2", readAt), mine("c3"), theirs("c4"),
	}}
	h := loaded(ds)

	expectRead(t, h.engine, 2)
	if got := h.engine.RowCount(rowindex.SectionCommitted); got != 6 {
		t.Fatalf("RowCount(committed) = %d, want 6", got)
	}

	wantText := []string{"c4", "c3", "c2", "", "c1", "c0"}
	for row, text := range wantText {
		r := h.engine.Row(c(row))
		if text == "" {
			if r.Message.Kind != message.KindReadMarker {
				t.Errorf("row %d kind = %v, want read marker", row, r.Message.Kind)
			}
			continue
		}
		if r.Message.Text != text {
			t.Errorf("row %d text = %q, want %q", row, r.Message.Text, text)
		}
	}
}

func TestReadScan_SkipsTheirsAndAnnotations(t *testing.T) {
	ann := entry{msg: message.NewAnnotation("offline", message.Mine, t0)}
	ann.read = &readLate
	th := theirs("hi")
	th.read = &readLate

	ds := &sliceSource{committed: []entry{th, ann, mine("unread"), readMine("seen", readAt)}}
	h := loaded(ds)

	info, ok := h.engine.ReadInfo()
	if !ok {
		t.Fatal("no read info")
	}
	if info.Index != 3 || !info.Date.Equal(readAt) {
		t.Errorf("read info = %+v, want index 3 at %v", info, readAt)
	}
}

func TestRow_ReadMarkerLabel(t *testing.T) {
	ds := &sliceSource{committed: []entry{readMine("a", readAt)}}
	h := loaded(ds)

	r := h.engine.Row(c(1))
	want := "Read " + readAt.Format(DefaultOptions().ReadDateLayout)
	if r.Message.Text != want {
		t.Errorf("read marker text = %q, want %q", r.Message.Text, want)
	}
	if r.Message.ShowTimestamp {
		t.Error("read marker should not show a timestamp")
	}
	if !r.Index.Equal(rowindex.ReadIndex(readAt)) {
		t.Errorf("read marker index = %v", r.Index)
	}
}

func TestInsertCommitted_PrependShiftsReadInfo(t *testing.T) {
	ds := &sliceSource{committed: []entry{mine("c0"), readMine("c1", readAt), theirs("c2")}}
	h := loaded(ds)
	expectRead(t, h.engine, 1)

	before := map[string]rowindex.Position{}
	for row := 0; row < h.engine.RowCount(rowindex.SectionCommitted); row++ {
		before[h.engine.Row(c(row)).Message.Text] = c(row)
	}

	ds.prependCommitted(theirs("n0"), theirs("n1"))
	h.engine.InsertCommitted(2, 0, false, AnimationFade)

	expectRead(t, h.engine, 3)
	if got := h.engine.Layout().Committed; got != 5 {
		t.Errorf("committed = %d, want 5", got)
	}
	if len(h.view.ops) != 1 || h.view.ops[0].kind != "insert" {
		t.Fatalf("ops = %v, want one insert", h.view.ops)
	}
	if !samePositions(h.view.ops[0].rows, []rowindex.Position{c(4), c(5)}) {
		t.Errorf("inserted rows = %v, want [0:4 0:5]", h.view.ops[0].rows)
	}

	for text, p0 := range before {
		if got := h.engine.Row(p0).Message.Text; got != text {
			t.Errorf("row %v now shows %q, want %q", p0, got, text)
		}
	}
}

func TestInsertCommitted_OlderMessagesKeepReadIndex(t *testing.T) {
	ds := &sliceSource{committed: []entry{readMine("c0", readAt), theirs("c1")}}
	h := loaded(ds)

	ds.committed = append(ds.committed, theirs("old"))
	h.engine.InsertCommitted(1, 2, false, AnimationTop)

	expectRead(t, h.engine, 0)
	expectOps(t, h.view, "insert [0:0] top")
}

func TestInsertCommitted_ScrollsAfterSettleDelay(t *testing.T) {
	ds := &sliceSource{committed: []entry{theirs("a")}}
	h := loaded(ds)

	ds.prependCommitted(theirs("b"))
	h.engine.InsertCommitted(1, 0, true, AnimationBottom)

	if len(h.sched.timers) != 1 {
		t.Fatalf("scheduled %d timers, want 1", len(h.sched.timers))
	}
	if h.sched.timers[0].d != DefaultScrollSettleDelay {
		t.Errorf("delay = %v, want %v", h.sched.timers[0].d, DefaultScrollSettleDelay)
	}
	h.sched.fireTimers()
	expectOps(t, h.view, "insert [0:1] bottom", "scroll 0:1 animated=true")
}

func TestInsertCommitted_NonPositiveCountIsNoop(t *testing.T) {
	h := loaded(&sliceSource{committed: []entry{theirs("a")}})
	h.engine.InsertCommitted(0, 0, true, AnimationFade)
	h.engine.InsertCommitted(-1, 0, true, AnimationFade)
	h.engine.InsertPending(0, true, AnimationFade)
	if len(h.view.ops) != 0 || len(h.sched.timers) != 0 {
		t.Errorf("ops = %v, timers = %d, want none", h.view.ops, len(h.sched.timers))
	}
}

func TestInsertCommitted_CountMismatchPanicsWhenStrict(t *testing.T) {
	ds := &sliceSource{committed: []entry{theirs("a")}}
	h := loaded(ds)
	ds.prependCommitted(theirs("b"))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on count mismatch")
		}
		err, ok := r.(error)
		if !ok || !perrors.Is(err, perrors.KindContract) {
			t.Errorf("panic value = %v, want contract error", r)
		}
	}()
	h.engine.InsertCommitted(2, 0, false, AnimationFade)
}

func TestInsertCommitted_CountMismatchIgnoredInRelease(t *testing.T) {
	ds := &sliceSource{committed: []entry{theirs("a")}}
	view := &recordingView{}
	opts := DefaultOptions()
	opts.Strict = false
	e := New(ds, nil, &manualScheduler{}, opts)
	e.SetView(view)
	e.FullReload()
	view.reset()

	ds.prependCommitted(theirs("b"))
	e.InsertCommitted(2, 0, false, AnimationFade)

	if len(view.ops) != 0 {
		t.Errorf("ops = %v, want none", view.ops)
	}
	if got := e.Layout().Committed; got != 1 {
		t.Errorf("committed = %d, want unchanged 1", got)
	}
}

func TestInsertPending(t *testing.T) {
	ds := &sliceSource{committed: []entry{theirs("a")}}
	h := loaded(ds)

	ds.pending = []message.Message{
		message.NewText("p0", message.Mine, t0),
		message.NewText("p1", message.Mine, t0),
	}
	h.engine.InsertPending(2, false, AnimationBottom)

	if len(h.view.ops) != 1 {
		t.Fatalf("ops = %v, want one insert", h.view.ops)
	}
	if !samePositions(h.view.ops[0].rows, []rowindex.Position{p(0), p(1)}) {
		t.Errorf("inserted rows = %v", h.view.ops[0].rows)
	}
	if r := h.engine.Row(p(1)); r.Message.Text != "p0" || !r.Translucent {
		t.Errorf("newest pending row = %+v, want translucent p0", r)
	}
}

func TestCommitPending_MovesRowAndRefreshes(t *testing.T) {
	ds := &sliceSource{
		committed: []entry{theirs("a"), theirs("b")},
		pending: []message.Message{
			message.NewText("p0", message.Mine, t0),
			message.NewText("p1", message.Mine, t0),
		},
	}
	h := loaded(ds)
	totalBefore := h.engine.RowCount(rowindex.SectionCommitted) + h.engine.RowCount(rowindex.SectionPending)

	delivered := ds.pending[1]
	ds.pending = ds.pending[:1]
	ds.prependCommitted(entry{msg: delivered})
	h.engine.CommitPending(1, 0)

	expectOps(t, h.view, "move 1:0->0:2")

	l := h.engine.Layout()
	if l.Committed != 3 || l.Pending != 1 {
		t.Errorf("layout = %+v, want 3 committed 1 pending", l)
	}
	totalAfter := h.engine.RowCount(rowindex.SectionCommitted) + h.engine.RowCount(rowindex.SectionPending)
	if totalAfter != totalBefore {
		t.Errorf("total rows = %d, want %d", totalAfter, totalBefore)
	}

	if len(h.sched.timers) != 1 || h.sched.timers[0].d != DefaultMoveSettleDelay {
		t.Fatalf("timers = %+v, want one at %v", h.sched.timers, DefaultMoveSettleDelay)
	}
	h.sched.fireTimers()
	expectOps(t, h.view, "move 1:0->0:2", "reload [0:2] fade")
}

func TestCommitPending_ShiftsReadInfo(t *testing.T) {
	ds := &sliceSource{
		committed: []entry{readMine("a", readAt), theirs("b")},
		pending:   []message.Message{message.NewText("p0", message.Mine, t0)},
	}
	h := loaded(ds)

	ds.pending = nil
	ds.prependCommitted(mine("p0"))
	h.engine.CommitPending(0, 0)

	expectRead(t, h.engine, 1)
	expectOps(t, h.view, "move 1:0->0:3")
}

func TestCommitPending_UnresolvableIsNoop(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
	}{
		{"source out of range", 5, 0},
		{"negative source", -1, 0},
		{"target out of range", 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &sliceSource{
				committed: []entry{theirs("a")},
				pending:   []message.Message{message.NewText("p0", message.Mine, t0)},
			}
			h := loaded(ds)
			before := h.engine.layout
			h.view.reset()

			h.engine.CommitPending(tt.from, tt.to)
			h.sched.fireTimers()

			if len(h.view.ops) != 0 {
				t.Errorf("ops = %v, want none", h.view.ops)
			}
			if h.engine.layout.Committed != before.Committed || h.engine.layout.Pending != before.Pending {
				t.Errorf("layout = %+v, want %+v", h.engine.layout, before)
			}
		})
	}
}

func TestContinuations_NoopAfterClose(t *testing.T) {
	ds := &sliceSource{
		committed: []entry{mine("a")},
		pending:   []message.Message{message.NewText("p0", message.Mine, t0)},
	}
	h := loaded(ds)

	ds.pending = nil
	ds.prependCommitted(mine("p0"))
	h.engine.CommitPending(0, 0)
	ds.committed[1].read = &readAt
	h.engine.RequestReadInfoUpdate()
	h.view.reset()

	h.engine.Close()
	h.sched.fireTimers()
	h.sched.endBatch()

	if len(h.view.ops) != 0 {
		t.Errorf("ops after close = %v, want none", h.view.ops)
	}
	if _, ok := h.engine.ReadInfo(); ok {
		t.Error("read info changed after close")
	}

	// Further calls are ignored too.
	h.engine.FullReload()
	h.engine.RequestReadInfoUpdate()
	if len(h.sched.batch) != 0 {
		t.Error("request scheduled after close")
	}
}

func TestRequestReadInfoUpdate_InsertsMarker(t *testing.T) {
	ds := &sliceSource{committed: []entry{mine("a"), theirs("b")}}
	h := loaded(ds)

	ds.committed[0].read = &readAt
	h.engine.RequestReadInfoUpdate()
	h.engine.RequestReadInfoUpdate()
	h.engine.RequestReadInfoUpdate()

	if len(h.sched.batch) != 1 {
		t.Fatalf("scheduled %d reconciliations, want 1", len(h.sched.batch))
	}
	h.sched.endBatch()

	expectOps(t, h.view, "insert [0:2] top")
	expectRead(t, h.engine, 0)
}

func TestRequestReadInfoUpdate_Idempotent(t *testing.T) {
	ds := &sliceSource{committed: []entry{mine("a"), readMine("b", readAt)}}
	h := loaded(ds)

	h.engine.RequestReadInfoUpdate()
	h.sched.endBatch()
	h.engine.RequestReadInfoUpdate()
	h.sched.endBatch()

	if len(h.view.ops) != 0 {
		t.Errorf("ops = %v, want none", h.view.ops)
	}
	expectRead(t, h.engine, 1)
}

func TestRequestReadInfoUpdate_MovesMarker(t *testing.T) {
	ds := &sliceSource{committed: []entry{mine("new"), readMine("old", readAt), theirs("t")}}
	h := loaded(ds)

	ds.committed[0].read = &readLate
	h.engine.RequestReadInfoUpdate()
	h.sched.endBatch()

	expectOps(t, h.view, "reload [0:2] fade", "move 0:2->0:3")
	info, _ := h.engine.ReadInfo()
	if info.Index != 0 || !info.Date.Equal(readLate) {
		t.Errorf("read info = %+v, want index 0 at %v", info, readLate)
	}
	if r := h.engine.Row(c(3)); r.Message.Kind != message.KindReadMarker {
		t.Errorf("row 3 = %v, want read marker", r.Message.Kind)
	}
}

func TestRequestReadInfoUpdate_DateOnly(t *testing.T) {
	ds := &sliceSource{committed: []entry{readMine("a", readAt)}}
	h := loaded(ds)

	ds.committed[0].read = &readLate
	h.engine.RequestReadInfoUpdate()
	h.sched.endBatch()

	expectOps(t, h.view, "reload [0:1] fade")
}

func TestRequestReadInfoUpdate_KeepsStaleMarker(t *testing.T) {
	ds := &sliceSource{committed: []entry{mine("a"), readMine("b", readAt)}}
	h := loaded(ds)

	ds.committed[1].read = nil
	h.engine.RequestReadInfoUpdate()
	h.sched.endBatch()

	if len(h.view.ops) != 0 {
		t.Errorf("ops = %v, want none", h.view.ops)
	}
	expectRead(t, h.engine, 1)
}

func TestFullReload_ScrollsOnlyOnFirstNonEmptyLoad(t *testing.T) {
	ds := &sliceSource{}
	h := newHarness(ds)

	h.engine.FullReload()
	expectOps(t, h.view, "reloadData")

	ds.pending = []message.Message{message.NewText("p", message.Mine, t0)}
	h.view.reset()
	h.engine.FullReload()
	expectOps(t, h.view, "reloadData")

	ds.pending = nil
	ds.committed = []entry{theirs("a"), theirs("b")}
	h.view.reset()
	h.engine.FullReload()
	expectOps(t, h.view, "reloadData", "scroll 0:1 animated=false")

	h.view.reset()
	h.engine.FullReload()
	expectOps(t, h.view, "reloadData")
}

func TestFullReload_DropsStaleMarker(t *testing.T) {
	ds := &sliceSource{committed: []entry{readMine("a", readAt)}}
	h := loaded(ds)

	ds.committed[0].read = nil
	h.engine.FullReload()

	if _, ok := h.engine.ReadInfo(); ok {
		t.Error("read info survived a full reload")
	}
}

func TestScrollToBottom(t *testing.T) {
	tests := []struct {
		name string
		ds   *sliceSource
		want []string
	}{
		{"empty", &sliceSource{}, nil},
		{"committed only", &sliceSource{committed: []entry{theirs("a"), theirs("b")}}, []string{"scroll 0:1 animated=true"}},
		{"read marker at bottom", &sliceSource{committed: []entry{readMine("a", readAt)}}, []string{"scroll 0:1 animated=true"}},
		{
			"pending wins",
			&sliceSource{
				committed: []entry{theirs("a")},
				pending:   []message.Message{message.NewText("p0", message.Mine, t0), message.NewText("p1", message.Mine, t0)},
			},
			[]string{"scroll 1:1 animated=true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := loaded(tt.ds)
			h.engine.ScrollToBottom(true)
			expectOps(t, h.view, tt.want...)
		})
	}
}

func TestRemoveCommitted(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		h := loaded(&sliceSource{committed: []entry{theirs("a")}})
		h.engine.RemoveCommitted(4)
		h.engine.RemoveCommitted(-1)
		if len(h.view.ops) != 0 {
			t.Errorf("ops = %v, want none", h.view.ops)
		}
	})

	t.Run("newer than marker", func(t *testing.T) {
		ds := &sliceSource{committed: []entry{theirs("x"), readMine("y", readAt), theirs("z")}}
		h := loaded(ds)

		ds.committed = ds.committed[1:]
		h.engine.RemoveCommitted(0)

		expectOps(t, h.view, "delete [0:3] fade")
		expectRead(t, h.engine, 0)
		if r := h.engine.Row(c(2)); r.Message.Kind != message.KindReadMarker {
			t.Errorf("row 2 = %v, want read marker", r.Message.Kind)
		}
	})

	t.Run("older than marker", func(t *testing.T) {
		ds := &sliceSource{committed: []entry{readMine("x", readAt), theirs("y")}}
		h := loaded(ds)

		ds.committed = ds.committed[:1]
		h.engine.RemoveCommitted(1)

		expectOps(t, h.view, "delete [0:0] fade")
		expectRead(t, h.engine, 0)
	})

	t.Run("marked message", func(t *testing.T) {
		ds := &sliceSource{committed: []entry{theirs("x"), readMine("y", readAt), theirs("z")}}
		h := loaded(ds)

		ds.committed = []entry{ds.committed[0], ds.committed[2]}
		h.engine.RemoveCommitted(1)

		expectOps(t, h.view, "delete [0:1 0:2] fade")
		if _, ok := h.engine.ReadInfo(); ok {
			t.Error("read info kept for a removed message")
		}
		if got := h.engine.RowCount(rowindex.SectionCommitted); got != 2 {
			t.Errorf("RowCount = %d, want 2", got)
		}
		if len(h.sched.batch) != 1 {
			t.Errorf("scheduled %d read updates, want 1", len(h.sched.batch))
		}
	})
}

func TestRemovePending(t *testing.T) {
	ds := &sliceSource{pending: []message.Message{
		message.NewText("p0", message.Mine, t0),
		message.NewText("p1", message.Mine, t0),
	}}
	h := loaded(ds)

	ds.pending = ds.pending[:1]
	h.engine.RemovePending(1)
	h.engine.RemovePending(3)

	expectOps(t, h.view, "delete [1:0] fade")
	if got := h.engine.Layout().Pending; got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
}

func TestUpdate(t *testing.T) {
	ds := &sliceSource{
		committed: []entry{theirs("a"), theirs("b")},
		pending:   []message.Message{message.NewText("p0", message.Mine, t0)},
	}
	h := loaded(ds)

	h.engine.UpdateCommitted(0)
	h.engine.UpdatePending(0)
	h.engine.UpdateCommitted(9)
	h.engine.UpdatePending(9)

	expectOps(t, h.view, "reload [0:1] fade", "reload [1:0] fade")
}

func TestTap(t *testing.T) {
	ds := &sliceSource{
		committed: []entry{readMine("a", readAt), theirs("b")},
		pending:   []message.Message{message.NewText("p0", message.Mine, t0)},
	}
	h := loaded(ds)

	h.engine.Tap(c(2))
	h.engine.Tap(c(0))
	h.engine.Tap(p(0))
	h.engine.Tap(c(7))

	if len(h.delegate.tapped) != 1 || h.delegate.tapped[0] != 1 {
		t.Errorf("tapped = %v, want [1]", h.delegate.tapped)
	}
	if len(h.delegate.tappedPen) != 1 || h.delegate.tappedPen[0] != 0 {
		t.Errorf("tapped pending = %v, want [0]", h.delegate.tappedPen)
	}
}

func TestRow_NotifiesDelegate(t *testing.T) {
	h := loaded(&sliceSource{committed: []entry{theirs("a")}})
	h.engine.Row(c(0))
	if len(h.delegate.prepared) != 1 || h.delegate.prepared[0].Text != "a" {
		t.Errorf("prepared = %v", h.delegate.prepared)
	}
}

func TestSubmitText(t *testing.T) {
	h := loaded(&sliceSource{})
	h.engine.SubmitText("hello")
	if len(h.delegate.submitted) != 1 || h.delegate.submitted[0] != "hello" {
		t.Errorf("submitted = %v", h.delegate.submitted)
	}
}

func TestMissingCollaborators(t *testing.T) {
	e := New(nil, nil, nil, DefaultOptions())

	if got := e.RowCount(rowindex.SectionCommitted); got != 0 {
		t.Errorf("RowCount = %d, want 0", got)
	}
	if r := e.Row(c(0)); !r.Placeholder {
		t.Error("row without data source should be a placeholder")
	}
	if got := e.EstimatedHeight(c(0), 80); got != 1 {
		t.Errorf("EstimatedHeight = %d, want 1", got)
	}

	e.FullReload()
	e.InsertCommitted(1, 0, true, AnimationFade)
	e.InsertPending(1, true, AnimationFade)
	e.CommitPending(0, 0)
	e.RemoveCommitted(0)
	e.RemovePending(0)
	e.UpdateCommitted(0)
	e.RequestReadInfoUpdate()
	e.ScrollToBottom(true)
	e.Tap(c(0))
	e.SubmitText("ignored")
}

func TestEstimatedHeight_DelegateOverridesCommittedRows(t *testing.T) {
	ds := &sliceSource{
		committed: []entry{readMine("a", readAt), theirs("b")},
		pending:   []message.Message{message.NewText("p0", message.Mine, t0)},
	}
	h := loaded(ds)
	h.delegate.estimates = map[int]int{0: 9, 1: 0}

	if got := h.engine.EstimatedHeight(c(1), 80); got != 9 {
		t.Errorf("committed 0 = %d, want delegate estimate 9", got)
	}
	if got := h.engine.EstimatedHeight(c(2), 80); got != ReadMarkerHeight {
		t.Errorf("read marker = %d, want %d", got, ReadMarkerHeight)
	}
	want := MessageHeight(ds.committed[1].msg, 80)
	if got := h.engine.EstimatedHeight(c(0), 80); got != want {
		t.Errorf("committed 1 = %d, want heuristic %d", got, want)
	}
	want = MessageHeight(ds.pending[0], 80)
	if got := h.engine.EstimatedHeight(p(0), 80); got != want {
		t.Errorf("pending 0 = %d, want heuristic %d", got, want)
	}
}
