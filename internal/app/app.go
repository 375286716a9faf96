// Package app is the parley terminal application: a header, a chat session
// over the demo conversation, and a footer with shortcuts and flash messages.
package app

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/conversation"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// Options configures a Model beyond what the config file holds.
type Options struct {
	Version string
	Bot     conversation.BotOptions
	// Engine overrides the engine options derived from the config.
	Engine *chatlist.Options
	// Now is the clock for message timestamps. Nil uses time.Now.
	Now func() time.Time
	// Empty starts without the seeded transcript.
	Empty bool
}

// DefaultOptions returns the options used by the interactive app.
func DefaultOptions(version string) Options {
	return Options{
		Version: version,
		Bot:     conversation.DefaultBotOptions(),
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	header  *ui.Header
	footer  *ui.Footer
	session *ui.Session

	conv *conversation.Conversation
	bot  *conversation.Bot
	now  func() time.Time

	width    int
	height   int
	showHelp bool

	// cmds collects commands queued by delegate callbacks during an update.
	cmds []tea.Cmd

	log *slog.Logger
}

// Clipboard access, replaced in tests.
var (
	readClipboardImage = clipboard.ReadImage
	writeClipboardText = clipboard.WriteText
)

// DeliveredMsg fires when a pending message's simulated delivery completes.
type DeliveredMsg struct {
	ID string
	// Fail forces the delivery to fail.
	Fail bool
}

// ReadMsg fires when the peer reads our delivered messages.
type ReadMsg struct{}

// IncomingMsg adds a message from the peer. An empty Text lets the bot
// choose one.
type IncomingMsg struct {
	Text string
}

// EngineOptions derives the engine options from the config.
func EngineOptions(cfg *config.Config) chatlist.Options {
	opts := chatlist.DefaultOptions()
	opts.ScrollSettleDelay = cfg.ScrollSettleDelay()
	opts.MoveSettleDelay = cfg.MoveSettleDelay()
	opts.ReadDateLayout = cfg.GetReadDateLayout()
	opts.Strict = opts.Strict || cfg.GetStrict()
	return opts
}

// New creates a new app model
func New(cfg *config.Config, opts Options) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}
	ui.SetBubbleColors(cfg.GetBubbleColors())

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		config:  cfg,
		version: opts.Version,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		conv:    conversation.New(now),
		bot:     conversation.NewBot(opts.Bot),
		now:     now,
		log:     logger.WithComponent("app"),
	}

	sessionOpts := ui.DefaultSessionOptions()
	sessionOpts.Engine = EngineOptions(cfg)
	if opts.Engine != nil {
		sessionOpts.Engine = *opts.Engine
	}
	sessionOpts.TimeLayout = cfg.GetTimeLayout()
	m.session = ui.NewSession(m.conv, &chatDelegate{m: m}, sessionOpts)

	m.header.SetPeerName(cfg.GetPeerName())
	m.footer.SetHelpRows(helpRows())
	if !opts.Empty {
		m.conv.Seed(cfg.GetPeerName())
	}
	m.session.FullReload()
	m.log.Info("app created", "version", opts.Version, "messages", m.conv.CommittedCount())
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.session.Cmd()
}

// Session returns the chat session.
func (m *Model) Session() *ui.Session { return m.session }

// Conversation returns the demo conversation backing the session.
func (m *Model) Conversation() *conversation.Conversation { return m.conv }

// Footer returns the footer.
func (m *Model) Footer() *ui.Footer { return m.footer }

// HelpVisible reports whether the expanded help is shown.
func (m *Model) HelpVisible() bool { return m.showHelp }

// queue adds a command to run after the current update.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

// drain returns the queued commands together with the session's.
func (m *Model) drain(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.cmds...)
	m.cmds = nil
	cmds = append(cmds, m.session.Cmd())
	return tea.Batch(cmds...)
}
