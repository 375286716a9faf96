package ui

import (
	"slices"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/help"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/config"
)

// Settings options shown in the multi-select.
const (
	OptionNotifications = "notifications"
	OptionStrict        = "strict"
)

// Settings holds the values edited by the settings form. Settle delays are
// strings so the inputs can validate them.
type Settings struct {
	Theme          string
	PeerName       string
	MineColor      string
	TheirsColor    string
	TimeLayout     string
	ReadDateLayout string
	ScrollSettleMs string
	MoveSettleMs   string
	Options        []string
}

// SettingsFromConfig copies the current config values into a Settings.
func SettingsFromConfig(cfg *config.Config) *Settings {
	mine, theirs := cfg.GetBubbleColors()
	s := &Settings{
		Theme:          cfg.GetTheme(),
		PeerName:       cfg.GetPeerName(),
		MineColor:      mine,
		TheirsColor:    theirs,
		TimeLayout:     cfg.GetTimeLayout(),
		ReadDateLayout: cfg.GetReadDateLayout(),
		ScrollSettleMs: strconv.Itoa(int(cfg.ScrollSettleDelay().Milliseconds())),
		MoveSettleMs:   strconv.Itoa(int(cfg.MoveSettleDelay().Milliseconds())),
	}
	if cfg.GetNotificationsEnabled() {
		s.Options = append(s.Options, OptionNotifications)
	}
	if cfg.GetStrict() {
		s.Options = append(s.Options, OptionStrict)
	}
	return s
}

// Has reports whether an option is selected.
func (s *Settings) Has(option string) bool {
	return slices.Contains(s.Options, option)
}

// Apply validates the settings and writes them to cfg. Nothing is written
// when a value is invalid.
func (s *Settings) Apply(cfg *config.Config) error {
	scrollMs, err := config.ParseSettleMs(s.ScrollSettleMs)
	if err != nil {
		return err
	}
	moveMs, err := config.ParseSettleMs(s.MoveSettleMs)
	if err != nil {
		return err
	}
	for _, color := range []string{s.MineColor, s.TheirsColor} {
		if err := config.ValidateColor(color); err != nil {
			return err
		}
	}
	for _, layout := range []string{s.TimeLayout, s.ReadDateLayout} {
		if err := config.ValidateLayout(layout); err != nil {
			return err
		}
	}

	peer := strings.TrimSpace(s.PeerName)
	if peer == "" {
		peer = config.DefaultPeerName
	}

	cfg.SetTheme(s.Theme)
	cfg.SetPeerName(peer)
	cfg.SetBubbleColors(s.MineColor, s.TheirsColor)
	cfg.SetLayouts(s.TimeLayout, s.ReadDateLayout)
	cfg.SetSettleDelays(scrollMs, moveMs)
	cfg.SetNotificationsEnabled(s.Has(OptionNotifications))
	cfg.SetStrict(s.Has(OptionStrict))
	return nil
}

func validateSettle(s string) error {
	_, err := config.ParseSettleMs(s)
	return err
}

// NewSettingsForm builds the settings form. Submitted values are written
// back into s.
func NewSettingsForm(s *Settings) *huh.Form {
	themes := make([]huh.Option[string], 0, len(BuiltinThemes))
	for _, name := range ThemeNames() {
		themes = append(themes, huh.NewOption(GetTheme(name).Name, string(name)))
	}

	general := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themes...).
			Value(&s.Theme),
		huh.NewInput().
			Title("Peer name").
			Description("Shown in the header and on notifications").
			Value(&s.PeerName),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(
				huh.NewOption("Desktop notifications", OptionNotifications),
				huh.NewOption("Strict list checks", OptionStrict),
			).
			Value(&s.Options),
	).Title("General")

	appearance := huh.NewGroup(
		huh.NewInput().
			Title("Our bubble color").
			Description("#RRGGBB, empty for the theme color").
			Validate(config.ValidateColor).
			Value(&s.MineColor),
		huh.NewInput().
			Title("Their bubble color").
			Description("#RRGGBB, empty for the theme color").
			Validate(config.ValidateColor).
			Value(&s.TheirsColor),
		huh.NewInput().
			Title("Time layout").
			Description("Go time layout for bubble times").
			Validate(config.ValidateLayout).
			Value(&s.TimeLayout),
		huh.NewInput().
			Title("Read date layout").
			Description("Go time layout for the read marker").
			Validate(config.ValidateLayout).
			Value(&s.ReadDateLayout),
	).Title("Appearance")

	engine := huh.NewGroup(
		huh.NewInput().
			Title("Scroll settle (ms)").
			Description("Wait after a scroll before the list reloads").
			Validate(validateSettle).
			Value(&s.ScrollSettleMs),
		huh.NewInput().
			Title("Move settle (ms)").
			Description("Wait after a row moves before the list reloads").
			Validate(validateSettle).
			Value(&s.MoveSettleMs),
	).Title("List")

	return huh.NewForm(general, appearance, engine).
		WithTheme(FormTheme())
}

// FormTheme returns a huh theme that matches the current color palette.
func FormTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorError).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorError)

		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(ColorPrimary).MarginLeft(1).SetString("→")
		t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(ColorPrimary).MarginRight(1).SetString("←")
		t.Focused.Option = lipgloss.NewStyle().Foreground(ColorText)

		t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
		t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(ColorSecondary).SetString("[x] ")
		t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)
		t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(ColorTextMuted).SetString("[ ] ")

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextInverse).
			Background(ColorPrimary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextMuted)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}
