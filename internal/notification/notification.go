// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/parley/internal/logger"
)

// MaxPreviewLength bounds the message text shown in a notification.
const MaxPreviewLength = 80

var (
	notifierMu sync.Mutex
	notifier   = beeep.Notify
)

// SetNotifier replaces the function that delivers notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	notifier = fn
}

// ResetNotifier restores delivery through beeep.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// icon is a small PNG speech bubble generated once.
var icon = sync.OnceValue(func() []byte {
	const size = 32
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := color.RGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			inBody := y >= 4 && y < 22 && x >= 2 && x < size-2
			inTail := y >= 22 && y < 28 && x >= 6 && x < 6+(28-y)
			if inBody || inTail {
				img.Set(x, y, fill)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
})

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Log("Notification: Sending notification - title=%q, message=%q", title, message)

	notifierMu.Lock()
	fn := notifier
	notifierMu.Unlock()

	err := fn(title, message, icon())
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// MessageReceived notifies that peer sent a message. Long text is shortened
// to a single line.
func MessageReceived(peer, text string) error {
	return Send("parley", peer+": "+preview(text))
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > MaxPreviewLength {
		return string(runes[:MaxPreviewLength-1]) + "…"
	}
	return text
}
