package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Update header and footer context
	m.updateChrome()

	parts := []string{m.header.View(), m.session.View()}
	if m.showHelp {
		parts = append(parts, m.footer.HelpView())
	}
	parts = append(parts, m.footer.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// updateChrome refreshes the header counts and footer bindings from the
// current state.
func (m *Model) updateChrome() {
	m.header.SetCounts(m.conv.CommittedCount(), m.conv.PendingCount())

	listFocused := m.session.Focus() == ui.FocusList
	_, hasSelection := m.session.SelectedRow()
	m.footer.SetContext(listFocused, hasSelection, m.session.Input().Enabled())
}
