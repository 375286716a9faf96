package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/message"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/rowindex"
)

// =============================================================================
// Simulated delivery
// =============================================================================

// scheduleDelivery starts the simulated delivery of pending message id.
func (m *Model) scheduleDelivery(id string) tea.Cmd {
	return tea.Tick(m.bot.DeliveryDelay(), func(time.Time) tea.Msg {
		return DeliveredMsg{ID: id}
	})
}

// handleDelivered commits a pending message, or marks it failed.
func (m *Model) handleDelivered(msg DeliveredMsg) tea.Cmd {
	if _, ok := m.conv.PendingIndex(msg.ID); !ok {
		// Removed while in flight
		return nil
	}

	if msg.Fail || m.bot.DeliveryFails() {
		i, _ := m.conv.Fail(msg.ID)
		m.log.Warn("delivery failed", "id", msg.ID, "index", i)
		m.session.UpdatePending(i)
		return m.ShowFlashWarning("Message not delivered. Select it and press enter to retry")
	}

	from, to, ok := m.conv.Deliver(msg.ID)
	if !ok {
		return nil
	}
	m.log.Debug("delivered", "id", msg.ID, "from", from, "to", to)
	m.session.CommitPending(from, to)

	cmds := []tea.Cmd{
		tea.Tick(m.bot.ReadDelay(), func(time.Time) tea.Msg { return ReadMsg{} }),
	}
	if delay, ok := m.bot.Replies(); ok {
		cmds = append(cmds, tea.Tick(delay, func(time.Time) tea.Msg { return IncomingMsg{} }))
	}
	return tea.Batch(cmds...)
}

// handleRead marks our messages read and moves the read marker.
func (m *Model) handleRead() {
	if m.conv.MarkRead(m.now()) {
		m.session.RequestReadInfoUpdate()
	}
}

// receiveIncoming adds a message from the peer at the bottom of the log.
func (m *Model) receiveIncoming(text string) tea.Cmd {
	var msg message.Message
	if text != "" {
		msg = message.NewText(text, message.Theirs, m.now())
	} else {
		msg = m.bot.Incoming(m.now())
	}
	m.conv.Receive(msg)
	m.session.InsertCommitted(1, 0, true, chatlist.AnimationBottom)
	return m.notifyIncoming(msg)
}

// notifyIncoming sends a desktop notification when enabled.
func (m *Model) notifyIncoming(msg message.Message) tea.Cmd {
	if !m.config.GetNotificationsEnabled() {
		return nil
	}
	peer := m.config.GetPeerName()
	text := msg.Text
	if msg.Kind == message.KindImage {
		text = "sent a picture"
	}
	return func() tea.Msg {
		if err := notification.MessageReceived(peer, text); err != nil {
			m.log.Warn("notification failed", "error", err)
		}
		return nil
	}
}

// =============================================================================
// Image Handling
// =============================================================================

// handleImagePaste sends the clipboard image, if any. When explicit is false
// the paste came from the terminal and a missing image is not an error.
func (m *Model) handleImagePaste(explicit bool) tea.Cmd {
	m.log.Debug("handling image paste", "explicit", explicit)

	img, err := readClipboardImage()
	if err != nil {
		m.log.Debug("failed to read image from clipboard", "error", err)
		if explicit {
			return m.ShowFlashForError(err, "Clipboard unavailable")
		}
		return nil
	}
	if img == nil {
		if explicit {
			return m.ShowFlashInfo("No image in clipboard")
		}
		return nil
	}

	if err := img.Validate(); err != nil {
		m.log.Warn("image validation failed", "error", err)
		return m.ShowFlashError(err.Error())
	}

	m.log.Info("sending image", "sizeKB", img.SizeKB(), "mediaType", img.MediaType)
	id := m.conv.SendImage(img.Image)
	m.session.InsertPending(1, true, chatlist.AnimationBottom)
	return tea.Batch(
		m.scheduleDelivery(id),
		m.ShowFlashSuccess(fmt.Sprintf("Sending image (%dKB)", img.SizeKB())),
	)
}

// =============================================================================
// Selection actions
// =============================================================================

// copySelected copies the selected message's text to the clipboard.
func (m *Model) copySelected() tea.Cmd {
	row, ok := m.session.SelectedRow()
	if !ok || row.Placeholder {
		return nil
	}
	if row.Message.Kind == message.KindImage {
		return m.ShowFlashWarning("Pictures can't be copied as text")
	}
	if err := writeClipboardText(row.Message.Text); err != nil {
		m.log.Warn("copy failed", "error", err)
		return m.ShowFlashForError(err, "Copy failed")
	}
	m.session.List().FlashSelection()
	return m.ShowFlashSuccess("Copied to clipboard")
}

// removeSelected deletes the selected message from the conversation.
func (m *Model) removeSelected() tea.Cmd {
	idx, ok := m.session.SelectedIndex()
	if !ok {
		return nil
	}

	switch idx.Kind {
	case rowindex.Normal:
		if !m.conv.RemoveCommitted(idx.Value) {
			return nil
		}
		m.session.RemoveCommitted(idx.Value)
	case rowindex.Pending:
		if !m.conv.RemovePending(idx.Value) {
			return nil
		}
		m.session.RemovePending(idx.Value)
	default:
		return m.ShowFlashInfo("The read marker follows your messages and can't be removed")
	}

	m.log.Info("message removed", "index", idx)
	return m.ShowFlashInfo("Message removed")
}
