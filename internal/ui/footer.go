package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// DefaultFlashDuration is how long a flash message stays in the footer.
const DefaultFlashDuration = 3 * time.Second

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashMessage is a transient message that replaces the footer bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible.
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a second.
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	listFocused  bool // Whether the message list has focus
	hasSelection bool // Whether a row is selected
	inputEnabled bool // Whether the input bar accepts text
	flashMessage *FlashMessage
	helpRows     [][]KeyBinding
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		inputEnabled: true,
		helpRows:     defaultHelpRows,
		bindings: []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "tab", Desc: "messages"},
			{Key: "ctrl+n", Desc: "incoming"},
			{Key: "ctrl+v", Desc: "paste image"},
			{Key: "?", Desc: "help"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(listFocused, hasSelection, inputEnabled bool) {
	f.listFocused = listFocused
	f.hasSelection = hasSelection
	f.inputEnabled = inputEnabled
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings for the input-focused state
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) currentBindings() []KeyBinding {
	if !f.listFocused {
		if f.inputEnabled {
			return f.bindings
		}
		var out []KeyBinding
		for _, b := range f.bindings {
			if b.Key == "enter" {
				continue
			}
			out = append(out, b)
		}
		return out
	}

	listBindings := []KeyBinding{
		{Key: "↑/↓", Desc: "select"},
	}
	if f.hasSelection {
		listBindings = append(listBindings,
			KeyBinding{Key: "enter", Desc: "tap"},
			KeyBinding{Key: "ctrl+y", Desc: "copy"},
			KeyBinding{Key: "del", Desc: "remove"},
		)
	}
	return append(listBindings,
		KeyBinding{Key: "tab", Desc: "input"},
		KeyBinding{Key: "?", Desc: "help"},
	)
}

func (f *Footer) renderFlash() string {
	icon, style := "ℹ", FooterFlashStyle.Foreground(ColorInfo)
	switch f.flashMessage.Type {
	case FlashError:
		icon, style = "✕", FooterErrorStyle
	case FlashWarning:
		icon, style = "⚠", FooterFlashStyle.Foreground(ColorWarning)
	case FlashSuccess:
		icon, style = "✓", FooterFlashStyle
	}
	return FooterStyle.Width(f.width).Render(style.Render(icon + " " + f.flashMessage.Text))
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	var parts []string
	for _, b := range f.currentBindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

// defaultHelpRows is the expanded help, one line per group.
var defaultHelpRows = [][]KeyBinding{
	{{"tab", "toggle list/input"}, {"↑/↓ j/k", "select row"}, {"enter", "send or tap"}, {"esc", "back to input"}},
	{{"pgup/pgdn", "page"}, {"home/end", "top/bottom"}, {"ctrl+u/d", "half page"}, {"wheel", "scroll"}},
	{{"ctrl+n", "incoming message"}, {"ctrl+r", "reload"}, {"ctrl+v", "paste image"}, {"ctrl+y", "copy"}},
	{{"del", "remove message"}, {"shift+enter", "newline"}, {"?", "close help"}, {"ctrl+c", "quit"}},
}

// SetHelpRows replaces the expanded help. Rows past ExpandedHelpHeight are
// not shown.
func (f *Footer) SetHelpRows(rows [][]KeyBinding) {
	if len(rows) > ExpandedHelpHeight {
		rows = rows[:ExpandedHelpHeight]
	}
	f.helpRows = rows
}

// HelpView renders the expanded help. It is ExpandedHelpHeight lines tall.
func (f *Footer) HelpView() string {
	lines := make([]string, 0, len(f.helpRows))
	for _, row := range f.helpRows {
		var parts []string
		for _, b := range row {
			parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(" "+b.Desc))
		}
		line := " " + strings.Join(parts, "   ")
		if f.width > 0 {
			line = ansi.Truncate(line, f.width, "…")
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Height(ExpandedHelpHeight).Render(strings.Join(lines, "\n"))
}
