package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/ui"
)

// routeMouseClick forwards clicks inside the session area, adjusted to the
// session's coordinates. Clicks on the header, help and footer are dropped.
func (m *Model) routeMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	adjusted, ok := m.adjustMouseClickMsg(msg)
	if !ok {
		return nil
	}
	return m.session.Update(adjusted)
}

// adjustMouseClickMsg adjusts mouse click coordinates for the session.
// Y is adjusted by subtracting the header height.
func (m *Model) adjustMouseClickMsg(msg tea.MouseClickMsg) (tea.MouseClickMsg, bool) {
	y := msg.Y - ui.HeaderHeight
	sessionHeight := m.height - ui.HeaderHeight - ui.FooterHeight - m.session.BottomInset()
	if y < 0 || y >= sessionHeight {
		return tea.MouseClickMsg{}, false
	}
	return tea.MouseClickMsg{
		X:      msg.X,
		Y:      y,
		Button: msg.Button,
		Mod:    msg.Mod,
	}, true
}
