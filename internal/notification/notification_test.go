package notification

import (
	"errors"
	"strings"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:    "successful notification",
			title:   "Test Title",
			message: "Test Message",
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:    "empty message",
			title:   "Title",
			message: "",
		},
		{
			name:    "unicode content",
			title:   "通知",
			message: "🎉 Notification with emoji",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
			iconBytes, ok := call.icon.([]byte)
			if !ok {
				t.Errorf("icon type = %T, want []byte", call.icon)
			} else if len(iconBytes) == 0 {
				t.Error("icon is empty, expected PNG bytes")
			}
		})
	}
}

func TestMessageReceived(t *testing.T) {
	long := strings.Repeat("a", MaxPreviewLength+20)

	tests := []struct {
		name            string
		peer            string
		text            string
		expectedMessage string
	}{
		{"basic", "Ada", "hello", "Ada: hello"},
		{"multiline", "Ada", "line one\nline   two", "Ada: line one line two"},
		{"long", "Ada", long, "Ada: " + strings.Repeat("a", MaxPreviewLength-1) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := MessageReceived(tt.peer, tt.text); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			call := mock.calls[0]
			if call.title != "parley" {
				t.Errorf("title = %q, want %q", call.title, "parley")
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}
