// Package conversation holds the in-memory demo chat that drives parley's
// chat log: a two-section store of messages that implements
// chatlist.DataSource, and a Bot that plays the other participant.
//
// Indices follow the chat log convention: 0 is the newest message in each
// section. A Conversation is not safe for concurrent use; it is owned by the
// Bubble Tea update goroutine like the rest of the model.
package conversation

import (
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/parley/internal/message"
)

// Entry is one stored message.
type Entry struct {
	ID      string
	Message message.Message
	ReadAt  time.Time // zero until the peer reads it
}

// Conversation stores committed and pending messages, newest first.
type Conversation struct {
	committed []Entry
	pending   []Entry
	now       func() time.Time
}

// New creates an empty conversation. A nil clock uses time.Now.
func New(now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	return &Conversation{now: now}
}

// CommittedCount implements chatlist.DataSource.
func (c *Conversation) CommittedCount() int { return len(c.committed) }

// CommittedMessage implements chatlist.DataSource.
func (c *Conversation) CommittedMessage(i int) message.Message {
	if i < 0 || i >= len(c.committed) {
		return message.Message{}
	}
	return c.committed[i].Message
}

// ReadTimestamp implements chatlist.DataSource.
func (c *Conversation) ReadTimestamp(i int) (time.Time, bool) {
	if i < 0 || i >= len(c.committed) || c.committed[i].ReadAt.IsZero() {
		return time.Time{}, false
	}
	return c.committed[i].ReadAt, true
}

// PendingCount implements chatlist.DataSource.
func (c *Conversation) PendingCount() int { return len(c.pending) }

// PendingMessage implements chatlist.DataSource.
func (c *Conversation) PendingMessage(i int) message.Message {
	if i < 0 || i >= len(c.pending) {
		return message.Message{}
	}
	return c.pending[i].Message
}

// Committed returns the committed entry at i.
func (c *Conversation) Committed(i int) (Entry, bool) {
	if i < 0 || i >= len(c.committed) {
		return Entry{}, false
	}
	return c.committed[i], true
}

// Pending returns the pending entry at i.
func (c *Conversation) Pending(i int) (Entry, bool) {
	if i < 0 || i >= len(c.pending) {
		return Entry{}, false
	}
	return c.pending[i], true
}

// PendingIndex returns the current index of the pending message with id.
func (c *Conversation) PendingIndex(id string) (int, bool) {
	for i, e := range c.pending {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

// CommittedIndex returns the current index of the committed message with id.
func (c *Conversation) CommittedIndex(id string) (int, bool) {
	for i, e := range c.committed {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

func prepend(entries []Entry, e Entry) []Entry {
	entries = append(entries, Entry{})
	copy(entries[1:], entries)
	entries[0] = e
	return entries
}

// Receive stores msg as the newest committed message and returns its ID.
// The caller inserts one committed row at index 0.
func (c *Conversation) Receive(msg message.Message) string {
	e := Entry{ID: uuid.NewString(), Message: msg}
	c.committed = prepend(c.committed, e)
	return e.ID
}

// Send stores text as the newest pending message of ours and returns its
// ID. The caller inserts one pending row.
func (c *Conversation) Send(text string) string {
	return c.enqueue(message.NewText(text, message.Mine, c.now()))
}

// SendImage stores img as the newest pending message of ours.
func (c *Conversation) SendImage(img image.Image) string {
	return c.enqueue(message.NewImage(img, message.Mine, c.now()))
}

func (c *Conversation) enqueue(msg message.Message) string {
	e := Entry{ID: uuid.NewString(), Message: msg}
	c.pending = prepend(c.pending, e)
	return e.ID
}

// Deliver commits the pending message with id as the newest committed
// message, stamped with the delivery time. It returns the pending index it
// left and the committed index it landed at, ready for CommitPending.
// Failed messages are not delivered.
func (c *Conversation) Deliver(id string) (from, to int, ok bool) {
	from, ok = c.PendingIndex(id)
	if !ok || c.pending[from].Message.HasError {
		return 0, 0, false
	}
	e := c.pending[from]
	c.pending = append(c.pending[:from], c.pending[from+1:]...)
	e.Message.Time = c.now()
	c.committed = prepend(c.committed, e)
	return from, 0, true
}

// Fail marks the pending message with id as failed and returns its index
// for UpdatePending.
func (c *Conversation) Fail(id string) (int, bool) {
	i, ok := c.PendingIndex(id)
	if !ok {
		return 0, false
	}
	c.pending[i].Message.HasError = true
	return i, true
}

// Retry clears the error of the failed pending message at i and returns its
// ID so delivery can be scheduled again.
func (c *Conversation) Retry(i int) (string, bool) {
	if i < 0 || i >= len(c.pending) || !c.pending[i].Message.HasError {
		return "", false
	}
	c.pending[i].Message.HasError = false
	c.pending[i].Message.Time = c.now()
	return c.pending[i].ID, true
}

// MarkRead marks every unread committed message of ours as read at t and
// reports whether anything changed. Callers follow a change with
// RequestReadInfoUpdate.
func (c *Conversation) MarkRead(t time.Time) bool {
	changed := false
	for i := range c.committed {
		msg := c.committed[i].Message
		if msg.Side != message.Mine || msg.IsAnnotation() || !c.committed[i].ReadAt.IsZero() {
			continue
		}
		c.committed[i].ReadAt = t
		changed = true
	}
	return changed
}

// Unread reports whether any committed message of ours is still unread.
func (c *Conversation) Unread() bool {
	for _, e := range c.committed {
		if e.Message.Side == message.Mine && !e.Message.IsAnnotation() && e.ReadAt.IsZero() {
			return true
		}
	}
	return false
}

// RemoveCommitted deletes committed message i.
func (c *Conversation) RemoveCommitted(i int) bool {
	if i < 0 || i >= len(c.committed) {
		return false
	}
	c.committed = append(c.committed[:i], c.committed[i+1:]...)
	return true
}

// RemovePending deletes pending message i.
func (c *Conversation) RemovePending(i int) bool {
	if i < 0 || i >= len(c.pending) {
		return false
	}
	c.pending = append(c.pending[:i], c.pending[i+1:]...)
	return true
}

// Reset drops every message.
func (c *Conversation) Reset() {
	c.committed = nil
	c.pending = nil
}
