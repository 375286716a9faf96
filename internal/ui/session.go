package ui

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/chatlist"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/rowindex"
)

// Focus identifies which part of a session receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Engine      chatlist.Options
	TimeLayout  string
	Placeholder string
}

// DefaultSessionOptions returns the options used by NewSession callers that
// have no configuration.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Engine:      chatlist.DefaultOptions(),
		TimeLayout:  DefaultTimeLayout,
		Placeholder: DefaultPlaceholder,
	}
}

// Session is the chat session controller: a list panel over an input bar,
// wired to a reconciliation engine. Hosts mutate their data source, then call
// the matching operation here; the session keeps the list in step.
//
// Operations may queue continuations. Hosts that call operations from their
// own Update must return Cmd() so those continuations run.
type Session struct {
	engine *chatlist.Engine
	list   *List
	input  *InputBar
	sched  *Scheduler

	width       int
	height      int
	bottomInset int
	focus       Focus

	log *slog.Logger
}

// NewSession creates a session over ds. The delegate may be nil.
func NewSession(ds chatlist.DataSource, delegate chatlist.Delegate, opts SessionOptions) *Session {
	sched := NewScheduler()
	engine := chatlist.New(ds, delegate, sched, opts.Engine)

	list := NewList()
	list.SetSource(engine)
	list.SetTimeLayout(opts.TimeLayout)
	engine.SetView(list)

	input := NewInputBar()
	if opts.Placeholder != "" {
		input.SetPlaceholder(opts.Placeholder)
	}
	input.Focus()

	return &Session{
		engine: engine,
		list:   list,
		input:  input,
		sched:  sched,
		focus:  FocusInput,
		log:    logger.WithComponent("session"),
	}
}

// Engine returns the session's reconciliation engine.
func (s *Session) Engine() *chatlist.Engine { return s.engine }

// List returns the session's list view.
func (s *Session) List() *List { return s.list }

// Input returns the session's input bar.
func (s *Session) Input() *InputBar { return s.input }

// Cmd returns the commands queued by recent operations.
func (s *Session) Cmd() tea.Cmd {
	return tea.Batch(s.sched.Flush(), s.list.Cmd())
}

// SetSize sets the area available to the session, including the bottom
// inset.
func (s *Session) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.layout()
}

// SetBottomInset reserves lines at the bottom of the session area for
// another view. The list shrinks and scrolls to the bottom.
func (s *Session) SetBottomInset(lines int) {
	if lines < 0 {
		lines = 0
	}
	if lines == s.bottomInset {
		return
	}
	s.bottomInset = lines
	s.layout()
	s.engine.ScrollToBottom(true)
}

// BottomInset returns the reserved lines.
func (s *Session) BottomInset() int { return s.bottomInset }

func (s *Session) listPanelHeight() int {
	return max(s.height-s.bottomInset-InputTotalHeight, BorderSize+1)
}

func (s *Session) layout() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	ctx := GetViewContext()
	panel := s.listPanelHeight()
	s.list.SetSize(ctx.InnerWidth(s.width), ctx.InnerHeight(panel))
	s.input.SetWidth(s.width)
	ctx.Log("Session layout", "width", s.width, "height", s.height, "inset", s.bottomInset, "listPanel", panel)
}

// SetFocus moves keyboard focus between the list and the input bar.
func (s *Session) SetFocus(f Focus) {
	s.focus = f
	if f == FocusInput {
		s.input.Focus()
		s.list.ClearSelection()
	} else {
		s.input.Blur()
		if _, ok := s.list.Selected(); !ok {
			s.list.SelectPrev()
		}
	}
}

// Focus returns the focused part.
func (s *Session) Focus() Focus { return s.focus }

// Close detaches the engine. Continuations still in flight do nothing.
func (s *Session) Close() { s.engine.Close() }

// Data source mutations. Each must be called after the data source already
// reflects the change.

func (s *Session) InsertCommitted(count, at int, scrollToBottom bool, anim chatlist.Animation) {
	s.engine.InsertCommitted(count, at, scrollToBottom, anim)
}

func (s *Session) InsertPending(count int, scrollToBottom bool, anim chatlist.Animation) {
	s.engine.InsertPending(count, scrollToBottom, anim)
}

func (s *Session) RemoveCommitted(i int) { s.engine.RemoveCommitted(i) }

func (s *Session) RemovePending(i int) { s.engine.RemovePending(i) }

func (s *Session) CommitPending(from, to int) { s.engine.CommitPending(from, to) }

func (s *Session) UpdateCommitted(i int) { s.engine.UpdateCommitted(i) }

func (s *Session) UpdatePending(i int) { s.engine.UpdatePending(i) }

func (s *Session) RequestReadInfoUpdate() { s.engine.RequestReadInfoUpdate() }

func (s *Session) FullReload() { s.engine.FullReload() }

func (s *Session) ScrollToBottom(animated bool) { s.engine.ScrollToBottom(animated) }

// ClearInputText empties the input bar.
func (s *Session) ClearInputText() { s.input.Clear() }

// SetPlaceholder sets the input bar placeholder.
func (s *Session) SetPlaceholder(text string) { s.input.SetPlaceholder(text) }

// SetInputEnabled enables or disables the input bar.
func (s *Session) SetInputEnabled(enabled bool) { s.input.SetEnabled(enabled) }

// SelectedIndex returns the logical index of the selected row.
func (s *Session) SelectedIndex() (rowindex.Index, bool) {
	row, ok := s.list.SelectedRow()
	if !ok || row.Placeholder {
		return rowindex.Index{}, false
	}
	return row.Index, true
}

// SelectedRow returns the selected row.
func (s *Session) SelectedRow() (chatlist.Row, bool) {
	return s.list.SelectedRow()
}

// Update routes a message to the engine's continuations, the list and the
// input bar.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	if s.sched.Handle(msg) {
		return s.Cmd()
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case listFlashTickMsg:
		cmds = append(cmds, s.list.Update(msg))

	case tea.MouseClickMsg:
		// Coordinates are relative to the session; the panel border takes
		// one line and one column.
		if msg.Button == tea.MouseLeft {
			if p, ok := s.list.RowAt(msg.Y - 1); ok && msg.Y-1 < s.list.Height() {
				s.SetFocus(FocusList)
				s.list.Select(p)
				s.engine.Tap(p)
			}
		}

	case tea.MouseWheelMsg:
		cmds = append(cmds, s.list.Update(msg))

	case tea.KeyPressMsg:
		cmds = append(cmds, s.handleKey(msg))

	default:
		cmds = append(cmds, s.list.Update(msg))
	}

	cmds = append(cmds, s.Cmd())
	return tea.Batch(cmds...)
}

func (s *Session) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
		return s.list.Update(msg)
	case keys.Home:
		s.list.GotoTop()
		return nil
	case keys.End:
		s.list.GotoBottom()
		return nil
	}

	if s.focus == FocusInput {
		text, cmd := s.input.Update(msg)
		if text != "" {
			s.engine.SubmitText(text)
		}
		return cmd
	}

	switch msg.String() {
	case keys.Up, "k":
		s.list.SelectPrev()
	case keys.Down, "j":
		s.list.SelectNext()
	case keys.Enter:
		if p, ok := s.list.Selected(); ok {
			s.engine.Tap(p)
		}
	case keys.Escape:
		s.SetFocus(FocusInput)
	}
	return nil
}

// View renders the list panel above the input bar. The bottom inset is left
// to the host.
func (s *Session) View() string {
	panelStyle := PanelStyle
	if s.focus == FocusList {
		panelStyle = PanelFocusedStyle
	}
	panel := panelStyle.Width(s.width).Height(s.listPanelHeight()).Render(s.list.View())
	return lipgloss.JoinVertical(lipgloss.Left, panel, s.input.View())
}
