package app

import (
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/conversation"
	"github.com/zhubert/parley/internal/keys"
)

var testNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// testConfig creates a default config backed by a temp file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

// testOptions returns options with a deterministic bot that always delivers,
// never replies, and zero delays everywhere.
func testOptions() Options {
	engine := chatlist.DefaultOptions()
	engine.ScrollSettleDelay = 0
	engine.MoveSettleDelay = 0
	engine.Strict = false
	return Options{
		Version: "0.0.0-test",
		Bot:     conversation.BotOptions{Seed: 1},
		Engine:  &engine,
		Now:     func() time.Time { return testNow },
	}
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(t *testing.T, opts Options, width, height int) *Model {
	t.Helper()
	m := New(testConfig(t), opts)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+n", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Delete:
		return tea.KeyPressMsg{Code: tea.KeyDelete}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlN:
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CtrlV:
		return tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the resulting command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) {
	for _, ch := range text {
		sendKey(m, string(ch))
	}
}

// settle runs cmd and every command that follows from it, feeding the
// messages back into the model. Commands that do not finish within a short
// window (flash ticks, long timers) are abandoned.
func settle(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 200; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- c() }()
		var msg tea.Msg
		select {
		case msg = <-done:
		case <-time.After(20 * time.Millisecond):
			continue
		}

		switch msg := msg.(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}
