package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// headerTitle is the bold part of the header.
const headerTitle = " parley"

// Header represents the top header bar
type Header struct {
	width     int
	peerName  string
	committed int
	pending   int
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetPeerName sets the name of the other participant
func (h *Header) SetPeerName(name string) {
	h.peerName = name
}

// SetCounts sets the message counts shown on the right
func (h *Header) SetCounts(committed, pending int) {
	h.committed = committed
	h.pending = pending
}

// countsText returns the muted counts suffix, or "" when there is nothing
// to show.
func (h *Header) countsText() string {
	if h.committed == 0 && h.pending == 0 {
		return ""
	}
	s := fmt.Sprintf("%d messages", h.committed)
	if h.committed == 1 {
		s = "1 message"
	}
	if h.pending > 0 {
		s += fmt.Sprintf(", %d sending", h.pending)
	}
	return "(" + s + ")"
}

// View renders the header
func (h *Header) View() string {
	titleText := headerTitle
	if h.peerName != "" {
		titleText += " · " + h.peerName
	}

	var rightText string
	counts := h.countsText()
	if counts != "" {
		rightText = counts + " "
	}

	// Calculate padding
	paddingLen := h.width - lipgloss.Width(titleText) - lipgloss.Width(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, counts)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// The muted suffix, when present, is drawn in the muted text color.
func (h *Header) renderGradient(content string, muted string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	mutedStart := -1
	if muted != "" {
		if i := strings.LastIndex(content, muted); i >= 0 {
			mutedStart = len([]rune(content[:i]))
		}
	}

	titleLen := len([]rune(headerTitle))
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleLen)

		if mutedStart >= 0 && i >= mutedStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
