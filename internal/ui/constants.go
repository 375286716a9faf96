// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 2

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// ExpandedHelpHeight is the bottom inset taken by the expanded help panel
	ExpandedHelpHeight = 4
)

// Animation timings
const (
	// AnimationDuration is how long an inserted or reloaded row stays highlighted
	AnimationDuration = 450 * time.Millisecond

	// FlashFrameInterval is the tick interval while any row is highlighted
	FlashFrameInterval = 150 * time.Millisecond

	// CopyFlashDuration is how long the selected row flashes after a copy
	CopyFlashDuration = 300 * time.Millisecond
)

// Input limits
const (
	// InputCharLimit is the character limit for the message input
	InputCharLimit = 4000

	// DefaultPlaceholder is shown in an empty input bar
	DefaultPlaceholder = "Type your message..."
)
