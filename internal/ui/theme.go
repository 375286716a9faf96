// Package ui provides theme management for the chat log.
// Themes define the color palette used for bubbles, annotations and chrome,
// allowing users to customize the visual appearance of parley.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for keys and flashes)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected row background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Timestamps, annotations, read markers
	TextInverse string // Text on colored backgrounds

	// Bubble colors
	Mine       string // Fill of our bubbles
	MineText   string // Text inside our bubbles (defaults to TextInverse)
	Theirs     string // Fill of their bubbles
	TheirsText string // Text inside their bubbles (defaults to Text)

	// Semantic colors
	Warning string
	Error   string // Failed delivery indicator
	Info    string
	Success string

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Code block background inside bubbles
	CodeBg string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// GetMineText returns the text color inside our bubbles
func (t Theme) GetMineText() string {
	if t.MineText != "" {
		return t.MineText
	}
	return t.TextInverse
}

// GetTheirsText returns the text color inside their bubbles
func (t Theme) GetTheirsText() string {
	if t.TheirsText != "" {
		return t.TheirsText
	}
	return t.Text
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Mine:        "#A78BFA",
		Theirs:      "#374151",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#06B6D4",
		Success:     "#10B981",
		Border:      "#374151",
		CodeBg:      "#1E1E2E",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Mine:        "#88C0D0",
		Theirs:      "#4C566A",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
		CodeBg:      "#242933",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Mine:        "#FF79C6",
		Theirs:      "#44475A",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Info:        "#8BE9FD",
		Success:     "#50FA7B",
		Border:      "#44475A",
		CodeBg:      "#21222C",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Mine:        "#FABD2F",
		Theirs:      "#504945",
		Warning:     "#FE8019",
		Error:       "#FB4934",
		Info:        "#83A598",
		Success:     "#B8BB26",
		Border:      "#504945",
		CodeBg:      "#1D2021",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Mine:        "#7AA2F7",
		Theirs:      "#3B4261",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Info:        "#7DCFFF",
		Success:     "#9ECE6A",
		Border:      "#3B4261",
		CodeBg:      "#16161E",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin Mocha",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		Text:        "#CDD6F4",
		TextMuted:   "#6C7086",
		TextInverse: "#1E1E2E",
		Mine:        "#F5C2E7",
		Theirs:      "#313244",
		Warning:     "#FAB387",
		Error:       "#F38BA8",
		Info:        "#89DCEB",
		Success:     "#A6E3A1",
		Border:      "#313244",
		CodeBg:      "#181825",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Mine:        "#3B82F6",
		Theirs:      "#E5E7EB",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Info:        "#0891B2",
		Success:     "#16A34A",
		Border:      "#D1D5DB",
		BorderFocus: "#6366F1",
		CodeBg:      "#F3F4F6",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// bubble color overrides from the config file
var mineOverride, theirsOverride string

// CurrentTheme returns the currently active theme with bubble overrides applied
func CurrentTheme() Theme {
	t := currentTheme
	if mineOverride != "" {
		t.Mine = mineOverride
	}
	if theirsOverride != "" {
		t.Theirs = theirsOverride
	}
	return t
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// SetBubbleColors overrides the bubble fills of the active theme. Empty
// strings restore the theme's own colors.
func SetBubbleColors(mine, theirs string) {
	mineOverride = mine
	theirsOverride = theirs
	regenerateStyles()
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := CurrentTheme()

	// Update color variables
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorMine = lipgloss.Color(t.Mine)
	ColorMineText = lipgloss.Color(t.GetMineText())
	ColorTheirs = lipgloss.Color(t.Theirs)
	ColorTheirsText = lipgloss.Color(t.GetTheirsText())
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorCodeBg = lipgloss.Color(t.CodeBg)
	ColorSelected = lipgloss.Color(t.GetBgSelected())

	buildStyles()
}
