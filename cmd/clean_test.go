package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"lowercase no", "no\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
		{"yes with spaces", "  yes  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, io.Discard, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	// Test with empty reader (simulates EOF)
	reader := strings.NewReader("")
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(EOF) = %v, want false", result)
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	// Test with a reader that returns an error
	reader := &errorReader{}
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(error) = %v, want false", result)
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

// cleanHome points the home directory at a temp dir holding two log files
// and a config file.
func cleanHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	logs := filepath.Join(home, ".parley", "logs")
	if err := os.MkdirAll(logs, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"parley.log", "old.log", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(logs, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(home, ".parley", "config.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return home
}

func setCleanFlags(t *testing.T, yes, cfg bool) {
	t.Helper()
	origYes, origConfig := skipConfirm, resetConfig
	t.Cleanup(func() { skipConfirm, resetConfig = origYes, origConfig })
	skipConfirm, resetConfig = yes, cfg
}

func TestRunClean_Logs(t *testing.T) {
	home := cleanHome(t)
	setCleanFlags(t, true, false)

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader(""), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}

	if !strings.Contains(out.String(), "2 log file(s) removed") {
		t.Errorf("Output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".parley", "logs", "notes.txt")); err != nil {
		t.Error("Expected non-log files kept")
	}
	if _, err := os.Stat(filepath.Join(home, ".parley", "config.json")); err != nil {
		t.Error("Expected the config kept without --config")
	}
}

func TestRunClean_Config(t *testing.T) {
	home := cleanHome(t)
	setCleanFlags(t, false, true)

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader("y\n"), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}

	if !strings.Contains(out.String(), "config file removed") {
		t.Errorf("Output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".parley", "config.json")); !os.IsNotExist(err) {
		t.Error("Expected the config removed")
	}
}

func TestRunClean_Aborted(t *testing.T) {
	home := cleanHome(t)
	setCleanFlags(t, false, true)

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}

	if !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("Output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".parley", "logs", "parley.log")); err != nil {
		t.Error("Expected logs kept after aborting")
	}
}

func TestRunClean_NothingToClean(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	setCleanFlags(t, true, true)

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader(""), &out); err != nil {
		t.Fatalf("runClean() error = %v", err)
	}
	if !strings.Contains(out.String(), "Nothing to clean.") {
		t.Errorf("Output = %q", out.String())
	}
}
