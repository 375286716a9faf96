package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
)

// InputBar is the text entry area below the list. Enter submits; shift+enter
// and ctrl+j insert a newline.
type InputBar struct {
	input   textarea.Model
	width   int
	focused bool
	enabled bool
}

// NewInputBar creates an enabled, unfocused input bar.
func NewInputBar() *InputBar {
	ti := textarea.New()
	ti.Placeholder = DefaultPlaceholder
	ti.CharLimit = InputCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, keys.CtrlJ)

	return &InputBar{input: ti, enabled: true}
}

// SetWidth sets the outer width of the bar, border included.
func (b *InputBar) SetWidth(width int) {
	b.width = width
	inner := GetViewContext().InnerWidth(width) - InputPaddingWidth
	if inner < 1 {
		inner = 1
	}
	b.input.SetWidth(inner)
}

// SetPlaceholder sets the text shown while the bar is empty.
func (b *InputBar) SetPlaceholder(s string) {
	b.input.Placeholder = s
}

// Placeholder returns the placeholder text.
func (b *InputBar) Placeholder() string {
	return b.input.Placeholder
}

// SetEnabled enables or disables text entry. A disabled bar drops focus.
func (b *InputBar) SetEnabled(enabled bool) {
	b.enabled = enabled
	if !enabled {
		b.input.Blur()
	} else if b.focused {
		b.input.Focus()
	}
}

// Enabled reports whether text entry is enabled.
func (b *InputBar) Enabled() bool {
	return b.enabled
}

// Focus gives the bar keyboard focus.
func (b *InputBar) Focus() {
	b.focused = true
	if b.enabled {
		b.input.Focus()
	}
}

// Blur removes keyboard focus.
func (b *InputBar) Blur() {
	b.focused = false
	b.input.Blur()
}

// Focused reports whether the bar has focus.
func (b *InputBar) Focused() bool {
	return b.focused
}

// Value returns the current text.
func (b *InputBar) Value() string {
	return b.input.Value()
}

// SetValue replaces the current text.
func (b *InputBar) SetValue(s string) {
	b.input.SetValue(s)
}

// Clear empties the bar.
func (b *InputBar) Clear() {
	b.input.Reset()
}

// Update handles a message while the bar is focused. When the user submits,
// the trimmed text is returned and the bar keeps its contents; the host
// decides whether to clear it.
func (b *InputBar) Update(msg tea.Msg) (submitted string, cmd tea.Cmd) {
	if !b.enabled || !b.focused {
		return "", nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == keys.Enter {
		return strings.TrimSpace(b.input.Value()), nil
	}
	b.input, cmd = b.input.Update(msg)
	return "", cmd
}

// View renders the bar with its border.
func (b *InputBar) View() string {
	style := ChatInputStyle
	switch {
	case !b.enabled:
		style = ChatInputDisabled
	case b.focused:
		style = ChatInputFocusedStyle
	}
	return style.Width(b.width).Render(b.input.View())
}
