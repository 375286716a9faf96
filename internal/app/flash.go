package app

import (
	tea "charm.land/bubbletea/v2"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/ui"
)

// ShowFlash sets the footer flash and returns the tick that expires it.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.log.Debug("flash", "text", text, "type", flashType)
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// ShowFlashForError flashes err by kind. Errors without a clipboard or image
// kind show fallback.
func (m *Model) ShowFlashForError(err error, fallback string) tea.Cmd {
	switch perrors.GetKind(err) {
	case perrors.KindClipboard:
		return m.ShowFlashWarning("Clipboard unavailable")
	case perrors.KindImage:
		return m.ShowFlashError("Unsupported image format")
	default:
		return m.ShowFlashError(fallback)
	}
}
