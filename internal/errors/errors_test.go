package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindConfig, "configuration error"},
		{KindContract, "contract violation"},
		{KindClipboard, "clipboard error"},
		{KindImage, "image error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_ContextBecomesCause(t *testing.T) {
	err := E(Op("x.Y"), KindInvalid, "bad input")
	if got := err.Error(); got != "x.Y: bad input" {
		t.Errorf("E() = %q, want %q", got, "x.Y: bad input")
	}
	if !Is(err, KindInvalid) {
		t.Error("Is(err, KindInvalid) = false, want true")
	}
}

func TestE_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := ConfigSaveFailed("/tmp/c.json", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if GetKind(err) != KindConfig {
		t.Errorf("GetKind() = %v, want %v", GetKind(err), KindConfig)
	}
}

func TestGetKind_ForeignError(t *testing.T) {
	if got := GetKind(fmt.Errorf("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want %v", got, KindUnknown)
	}
	if Is(nil, KindConfig) {
		t.Error("Is(nil, KindConfig) = true, want false")
	}
}

func TestCountMismatch(t *testing.T) {
	err := CountMismatch("chatlist.InsertCommitted", 2, 1)
	if !Is(err, KindContract) {
		t.Fatalf("CountMismatch kind = %v, want %v", GetKind(err), KindContract)
	}
	want := "chatlist.InsertCommitted: data source count changed by 1, caller announced 2"
	if got := err.Error(); got != want {
		t.Errorf("CountMismatch() = %q, want %q", got, want)
	}
}
