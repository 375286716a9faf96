package message

import (
	"image"
	"testing"
	"time"
)

func TestIsPureEmoji(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"empty string", "", false},
		{"single emoji", "🚢", true},
		{"two emoji", "👽❕", true},
		{"emoji with variation selector", "❤️", true},
		{"zwj family", "👨‍👩‍👧", true},
		{"skin tone modifier", "👍🏽", true},
		{"flag", "🇸🇪", true},
		{"keycap", "1️⃣", true},
		{"plain digit", "1", false},
		{"plain text", "A new message", false},
		{"text with emoji", "Let's travel! 🗽🗺", false},
		{"emoji separated by space", "🚢 🛩", false},
		{"trailing newline", "🚢\n", false},
		{"text default symbol", "©", true},
		{"sun with variation selector", "☀️", true},
		{"rainbow flag zwj", "🏳️‍🌈", true},
		{"black star", "★", false},
		{"check mark", "✓", false},
		{"ballot box", "☐", false},
		{"quarter note", "♩", false},
		{"heavy arrow", "➜", false},
		{"playing card", "🂡", false},
		{"mahjong tile other than red dragon", "🀅", false},
		{"red dragon mahjong tile", "🀄", true},
		{"star with variation selector", "★️", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPureEmoji(tt.text); got != tt.expected {
				t.Errorf("IsPureEmoji(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestViewKind(t *testing.T) {
	now := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	tests := []struct {
		name     string
		msg      Message
		expected ViewKind
	}{
		{"text mine", NewText("hi", Mine, now), ViewTextMine},
		{"text theirs", NewText("hi", Theirs, now), ViewTextTheirs},
		{"emoji mine", NewText("🛩", Mine, now), ViewEmojiMine},
		{"emoji theirs", NewText("🛩", Theirs, now), ViewEmojiTheirs},
		{"image mine", NewImage(img, Mine, now), ViewImageMine},
		{"image theirs", NewImage(img, Theirs, now), ViewImageTheirs},
		{"annotation ignores side", NewAnnotation("offline", Mine, now), ViewAnnotation},
		{"annotation ignores emoji", NewAnnotation("🛩", Theirs, now), ViewAnnotation},
		{"read marker", NewReadMarker("Read 10:00", now), ViewReadMarker},
		{"empty text is not emoji", NewText("", Mine, now), ViewTextMine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.ViewKind(); got != tt.expected {
				t.Errorf("ViewKind() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestShowsError(t *testing.T) {
	now := time.Now()

	text := NewText("hi", Mine, now)
	text.HasError = true
	if !text.ShowsError() {
		t.Error("text with HasError should show error")
	}

	ann := NewAnnotation("offline", Theirs, now)
	ann.HasError = true
	if ann.ShowsError() {
		t.Error("annotation should never show error")
	}
}

func TestIsAnnotation(t *testing.T) {
	now := time.Now()
	if NewText("x", Mine, now).IsAnnotation() {
		t.Error("text reported as annotation")
	}
	if !NewAnnotation("x", Mine, now).IsAnnotation() {
		t.Error("annotation not reported as annotation")
	}
	if !NewReadMarker("x", now).IsAnnotation() {
		t.Error("read marker not reported as annotation")
	}
}

func TestNewReadMarker_HidesTimestamp(t *testing.T) {
	m := NewReadMarker("Read", time.Now())
	if m.ShowTimestamp {
		t.Error("read marker should not show a timestamp label")
	}
	if m.Side != Mine {
		t.Errorf("read marker side = %v, want %v", m.Side, Mine)
	}
}
