package ui

import (
	"fmt"
	"time"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/rowindex"
)

var testTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// rowSource is a RowSource over two fixed slices of messages in display
// order. Every row estimates at estHeight lines.
type rowSource struct {
	rows      [2][]message.Message
	estHeight int
}

func newRowSource(committed, pending int) *rowSource {
	src := &rowSource{estHeight: 1}
	for i := 0; i < committed; i++ {
		src.rows[rowindex.SectionCommitted] = append(src.rows[rowindex.SectionCommitted],
			message.NewText(fmt.Sprintf("committed %d", i), message.Theirs, testTime))
	}
	for i := 0; i < pending; i++ {
		src.rows[rowindex.SectionPending] = append(src.rows[rowindex.SectionPending],
			message.NewText(fmt.Sprintf("pending %d", i), message.Mine, testTime))
	}
	return src
}

func (s *rowSource) RowCount(sec rowindex.Section) int {
	if sec != rowindex.SectionCommitted && sec != rowindex.SectionPending {
		return 0
	}
	return len(s.rows[sec])
}

func (s *rowSource) Row(p rowindex.Position) chatlist.Row {
	if p.Row < 0 || p.Row >= s.RowCount(p.Section) {
		return chatlist.Row{Placeholder: true}
	}
	return chatlist.Row{
		Message:     s.rows[p.Section][p.Row],
		Translucent: p.Section == rowindex.SectionPending,
	}
}

func (s *rowSource) EstimatedHeight(rowindex.Position, int) int { return s.estHeight }

func (s *rowSource) insert(sec rowindex.Section, row int, text string) {
	list := s.rows[sec]
	list = append(list, message.Message{})
	copy(list[row+1:], list[row:])
	list[row] = message.NewText(text, message.Theirs, testTime)
	s.rows[sec] = list
}

func (s *rowSource) remove(sec rowindex.Section, row int) {
	s.rows[sec] = append(s.rows[sec][:row], s.rows[sec][row+1:]...)
}

// chatSource is an in-memory DataSource. Index 0 of both slices is the newest
// message.
type chatSource struct {
	committed []message.Message
	read      map[int]time.Time
	pending   []message.Message
}

func (s *chatSource) CommittedCount() int                    { return len(s.committed) }
func (s *chatSource) CommittedMessage(i int) message.Message { return s.committed[i] }
func (s *chatSource) ReadTimestamp(i int) (time.Time, bool) {
	t, ok := s.read[i]
	return t, ok
}
func (s *chatSource) PendingCount() int                    { return len(s.pending) }
func (s *chatSource) PendingMessage(i int) message.Message { return s.pending[i] }

func newChatSource(texts ...string) *chatSource {
	src := &chatSource{read: map[int]time.Time{}}
	// texts are given oldest first
	for i := len(texts) - 1; i >= 0; i-- {
		src.committed = append(src.committed, message.NewText(texts[i], message.Theirs, testTime))
	}
	return src
}

// recordingDelegate records delegate callbacks.
type recordingDelegate struct {
	tapped        []int
	pendingTapped []int
	submitted     []string
	prepared      int
}

func (d *recordingDelegate) OnBeforePrepareRow(message.Message) { d.prepared++ }
func (d *recordingDelegate) OnMessageTapped(i int)              { d.tapped = append(d.tapped, i) }
func (d *recordingDelegate) OnPendingMessageTapped(i int) {
	d.pendingTapped = append(d.pendingTapped, i)
}
func (d *recordingDelegate) OnUserSubmittedText(text string) {
	d.submitted = append(d.submitted, text)
}
func (d *recordingDelegate) EstimatedRowHeight(int) (int, bool) { return 0, false }

// fixedClock returns a clock function and a setter for it.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}
