package ui

import (
	"sync"

	"github.com/zhubert/parley/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	BottomInset   int
	ContentHeight int
	ListHeight    int

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// Log writes a debug message to the log file.
func (v *ViewContext) Log(msg string, args ...any) {
	logger.WithComponent("ui").Debug(msg, args...)
}

// UpdateTerminalSize recalculates all dimensions when the terminal size or
// the bottom inset changes.
func (v *ViewContext) UpdateTerminalSize(width, height, bottomInset int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Validate dimensions to prevent negative layout values
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}
	if bottomInset < 0 {
		bottomInset = 0
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.BottomInset = bottomInset

	// Content area is everything between header and footer, minus the inset
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight - bottomInset
	if v.ContentHeight < InputTotalHeight+BorderSize+1 {
		v.ContentHeight = InputTotalHeight + BorderSize + 1
	}

	// The list panel sits above the input bar
	v.ListHeight = v.ContentHeight - InputTotalHeight

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"bottomInset", bottomInset,
		"contentHeight", v.ContentHeight,
		"listHeight", v.ListHeight,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
