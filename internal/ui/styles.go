package ui

import "charm.land/lipgloss/v2"

// Color palette, regenerated from the active theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#9CA3AF") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorMine        = lipgloss.Color("#A78BFA") // Our bubbles
	ColorMineText    = lipgloss.Color("#1F2937")
	ColorTheirs      = lipgloss.Color("#374151") // Their bubbles
	ColorTheirsText  = lipgloss.Color("#F9FAFB")
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan
	ColorError       = lipgloss.Color("#EF4444") // Red for failed delivery
	ColorSuccess     = lipgloss.Color("#10B981") // Green
	ColorCodeBg      = lipgloss.Color("#1E1E2E")
	ColorSelected    = lipgloss.Color("#7C3AED")
)

// Header styles
var (
	HeaderStyle      lipgloss.Style
	HeaderTitleStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle      lipgloss.Style
	FooterKeyStyle   lipgloss.Style
	FooterDescStyle  lipgloss.Style
	FooterFlashStyle lipgloss.Style
	FooterErrorStyle lipgloss.Style
)

// Panel and input styles
var (
	PanelStyle            lipgloss.Style
	PanelFocusedStyle     lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
	ChatInputDisabled     lipgloss.Style
)

// Bubble styles
var (
	BubbleMineStyle    lipgloss.Style
	BubbleTheirsStyle  lipgloss.Style
	BubblePendingStyle lipgloss.Style
	BubbleFlashBorder  = lipgloss.Color("#06B6D4")
	EmojiStyle         lipgloss.Style
	EmojiPendingStyle  lipgloss.Style
	TimestampStyle     lipgloss.Style
	ErrorIndicator     lipgloss.Style
	AnnotationStyle    lipgloss.Style
	ReadMarkerStyle    lipgloss.Style
	CodeBlockStyle     lipgloss.Style
)

// Row selection styles
var (
	TextSelectionStyle lipgloss.Style

	// TextSelectionFlashStyle is used briefly when a row is copied
	TextSelectionFlashStyle lipgloss.Style
)

func init() {
	regenerateStyles()
}

// buildStyles rebuilds every style from the color variables
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterFlashStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	FooterErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ChatInputDisabled = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder()).
		Foreground(ColorTextMuted).
		Padding(0, 1)

	BubbleMineStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMine).
		Background(ColorMine).
		Foreground(ColorMineText).
		Padding(0, 1)

	BubbleTheirsStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTheirs).
		Background(ColorTheirs).
		Foreground(ColorTheirsText).
		Padding(0, 1)

	// Pending messages are drawn as outlines until delivered
	BubblePendingStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Foreground(ColorTextMuted).
		Padding(0, 1)

	BubbleFlashBorder = ColorSecondary

	EmojiStyle = lipgloss.NewStyle()

	// Undelivered emoji have no bubble to outline, so they are dimmed
	EmojiPendingStyle = EmojiStyle.Faint(true)

	TimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ErrorIndicator = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	AnnotationStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ReadMarkerStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	CodeBlockStyle = lipgloss.NewStyle().
		Background(ColorCodeBg)

	TextSelectionStyle = lipgloss.NewStyle().
		Background(ColorSelected).
		Foreground(ColorText)

	TextSelectionFlashStyle = lipgloss.NewStyle().
		Background(ColorSuccess).
		Foreground(ColorTextInverse)
}
