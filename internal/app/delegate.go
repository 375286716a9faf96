package app

import (
	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/message"
)

// chatDelegate receives the chat log's callbacks. Callbacks run inside the
// model's Update, so commands they produce are queued on the model.
type chatDelegate struct {
	m *Model
}

var _ chatlist.Delegate = (*chatDelegate)(nil)

func (d *chatDelegate) OnBeforePrepareRow(message.Message) {}

// OnMessageTapped shows when a committed message was sent and read.
func (d *chatDelegate) OnMessageTapped(i int) {
	m := d.m
	entry, ok := m.conv.Committed(i)
	if !ok || entry.Message.IsAnnotation() {
		return
	}
	layout := m.config.GetReadDateLayout()
	text := "Received " + entry.Message.Time.Format(layout)
	if entry.Message.Side == message.Mine {
		text = "Sent " + entry.Message.Time.Format(layout)
		if !entry.ReadAt.IsZero() {
			text += ", read " + entry.ReadAt.Format(layout)
		}
	}
	m.queue(m.ShowFlashInfo(text))
}

// OnPendingMessageTapped retries a failed message.
func (d *chatDelegate) OnPendingMessageTapped(i int) {
	m := d.m
	id, ok := m.conv.Retry(i)
	if !ok {
		m.queue(m.ShowFlashInfo("Still sending"))
		return
	}
	m.log.Info("retrying message", "id", id, "index", i)
	m.session.UpdatePending(i)
	m.queue(m.scheduleDelivery(id))
}

// OnUserSubmittedText sends the text through the pending section.
func (d *chatDelegate) OnUserSubmittedText(text string) {
	m := d.m
	if text == "" {
		return
	}
	id := m.conv.Send(text)
	m.log.Debug("message submitted", "id", id, "length", len(text))
	m.session.InsertPending(1, true, chatlist.AnimationBottom)
	m.session.ClearInputText()
	m.queue(m.scheduleDelivery(id))
}

// EstimatedRowHeight defers to the built-in heuristic, which already sizes
// every kind of message the conversation produces.
func (d *chatDelegate) EstimatedRowHeight(int) (int, bool) { return 0, false }
