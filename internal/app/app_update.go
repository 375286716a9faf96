package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, m.drain()
		}
		return m, m.drain(ui.FlashTick())

	case DeliveredMsg:
		cmds = append(cmds, m.handleDelivered(msg))

	case ReadMsg:
		m.handleRead()

	case IncomingMsg:
		cmds = append(cmds, m.receiveIncoming(msg.Text))

	case tea.PasteStartMsg:
		// Terminals intercept ctrl+v and send paste events instead
		if m.session.Focus() == ui.FocusInput {
			cmds = append(cmds, m.handleImagePaste(false))
		}

	case tea.KeyPressMsg:
		if cmd, handled := m.ExecuteShortcut(msg.String()); handled {
			return m, m.drain(cmd)
		}
		cmds = append(cmds, m.session.Update(msg))

	case tea.MouseClickMsg:
		cmds = append(cmds, m.routeMouseClick(msg))

	default:
		cmds = append(cmds, m.session.Update(msg))
	}

	return m, m.drain(cmds...)
}

func (m *Model) toggleFocus() {
	if m.session.Focus() == ui.FocusInput {
		m.session.SetFocus(ui.FocusList)
	} else {
		m.session.SetFocus(ui.FocusInput)
	}
	m.log.Debug("focus toggled", "focus", m.session.Focus())
}

func (m *Model) toggleHelp() {
	m.showHelp = !m.showHelp
	if m.showHelp {
		m.session.SetBottomInset(ui.ExpandedHelpHeight)
	} else {
		m.session.SetBottomInset(0)
	}
	ui.GetViewContext().UpdateTerminalSize(m.width, m.height, m.session.BottomInset())
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height, m.session.BottomInset())

	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.session.SetSize(m.width, max(m.height-ui.HeaderHeight-ui.FooterHeight, 0))
}
