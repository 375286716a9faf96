// Package ui provides the terminal components for the parley chat log.
//
// # Overview
//
// The ui package renders a chatlist.Engine with Bubble Tea and Lipgloss. It
// follows the Model-Update-View pattern established by Bubble Tea; the
// components are plain structs owned by the application model.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   List (committed rows, then pending rows)          │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Input bar                                           │
//	├─────────────────────────────────────────────────────┤
//	│ Bottom inset (expanded help, optional)              │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Session: The chat session controller. Owns the engine, the List, the
// InputBar and a Scheduler, and forwards data source mutations to the
// engine.
//
// List: Implements chatlist.ListView on top of a bubbles viewport. Keeps one
// slot per physical row and renders lazily around the visible window.
//
// Scheduler: Turns the engine's delayed and end-of-batch continuations into
// tea commands so they run on the update goroutine.
//
// Header and Footer: Title with counts, and context-aware shortcuts with
// flash messages.
//
// # Focus System
//
// A session has two focus states:
//   - FocusInput: keys go to the textarea, enter submits
//   - FocusList: arrow keys move the row selection, enter taps the row
//
// Paging keys scroll the list in either state.
//
// # Styles
//
// Styles are defined in styles.go and rebuilt from the current Theme by
// SetTheme. Bubble colors can be overridden with SetBubbleColors.
package ui
