package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the application's shortcuts.
type Shortcut struct {
	Key          string                 // The key binding (e.g., "tab", "ctrl+n")
	DisplayKey   string                 // Display name in help; defaults to Key
	Description  string                 // Human-readable description
	Category     string                 // Help row the shortcut is listed in
	RequiresList bool                   // Only while the message list has focus
	Handler      func(m *Model) tea.Cmd // Action to perform
	Condition    func(m *Model) bool    // Optional extra condition
}

// Categories for organizing shortcuts in the expanded help. Each category is
// one help line.
const (
	CategoryNavigation   = "Navigation"
	CategoryScrolling    = "Scrolling"
	CategoryConversation = "Conversation"
	CategoryGeneral      = "General"
)

// categoryOrder defines the display order of categories in the help
var categoryOrder = []string{
	CategoryNavigation,
	CategoryScrolling,
	CategoryConversation,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of the application shortcuts.
// Keys not claimed here go to the session.
var ShortcutRegistry = []Shortcut{
	{
		Key:         keys.Tab,
		Description: "toggle list/input",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         keys.CtrlN,
		Description: "incoming message",
		Category:    CategoryConversation,
		Handler:     shortcutIncoming,
	},
	{
		Key:         keys.CtrlV,
		Description: "paste image",
		Category:    CategoryConversation,
		Handler:     shortcutPasteImage,
	},
	{
		Key:         keys.CtrlR,
		Description: "reload",
		Category:    CategoryConversation,
		Handler:     shortcutReload,
	},
	{
		Key:          keys.CtrlY,
		Description:  "copy",
		Category:     CategoryConversation,
		RequiresList: true,
		Handler:      shortcutCopy,
	},
	{
		Key:          keys.Delete,
		DisplayKey:   "del",
		Description:  "remove message",
		Category:     CategoryConversation,
		RequiresList: true,
		Handler:      shortcutRemove,
	},
	{
		Key:         "?",
		Description: "toggle help",
		Category:    CategoryGeneral,
		Handler:     shortcutHelp,
		// Only claim "?" when it would not be typed into a message
		Condition: func(m *Model) bool {
			return m.session.Focus() == ui.FocusList || m.session.Input().Value() == ""
		},
	},
	{
		Key:         keys.CtrlC,
		Description: "quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// DisplayOnlyShortcuts are handled by the session but listed in the help.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ j/k", Description: "select row", Category: CategoryNavigation},
	{DisplayKey: "enter", Description: "send or tap", Category: CategoryNavigation},
	{DisplayKey: "esc", Description: "back to input", Category: CategoryNavigation},
	{DisplayKey: "pgup/pgdn", Description: "page", Category: CategoryScrolling},
	{DisplayKey: "home/end", Description: "top/bottom", Category: CategoryScrolling},
	{DisplayKey: "ctrl+u/d", Description: "half page", Category: CategoryScrolling},
	{DisplayKey: "shift+enter", Description: "newline", Category: CategoryScrolling},
}

func (s Shortcut) displayKey() string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

// isShortcutApplicable checks if a shortcut's guards pass in the current
// model state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresList && m.session.Focus() != ui.FocusList {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (cmd, true) if the shortcut was found and its guards passed.
func (m *Model) ExecuteShortcut(key string) (tea.Cmd, bool) {
	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.Log("Shortcut: guards failed for %q, passing key on", key)
			return nil, false
		}
		return s.Handler(m), true
	}
	return nil, false
}

// helpRows builds the expanded help, one row per category.
func helpRows() [][]ui.KeyBinding {
	rows := make([][]ui.KeyBinding, len(categoryOrder))
	add := func(s Shortcut) {
		for i, c := range categoryOrder {
			if c == s.Category {
				rows[i] = append(rows[i], ui.KeyBinding{Key: s.displayKey(), Desc: s.Description})
			}
		}
	}
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}
	for _, s := range ShortcutRegistry {
		add(s)
	}
	return rows
}

func shortcutToggleFocus(m *Model) tea.Cmd {
	m.toggleFocus()
	return nil
}

func shortcutIncoming(m *Model) tea.Cmd {
	return m.receiveIncoming("")
}

func shortcutPasteImage(m *Model) tea.Cmd {
	return m.handleImagePaste(true)
}

func shortcutReload(m *Model) tea.Cmd {
	m.session.FullReload()
	return m.ShowFlashInfo("Reloaded")
}

func shortcutCopy(m *Model) tea.Cmd {
	return m.copySelected()
}

func shortcutRemove(m *Model) tea.Cmd {
	return m.removeSelected()
}

func shortcutHelp(m *Model) tea.Cmd {
	m.toggleHelp()
	return nil
}

func shortcutQuit(m *Model) tea.Cmd {
	return tea.Quit
}
