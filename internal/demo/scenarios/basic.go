// Package scenarios contains built-in demo scenarios for parley.
package scenarios

import (
	"time"

	"github.com/zhubert/parley/internal/demo"
	"github.com/zhubert/parley/internal/ui"
)

// Basic demonstrates the everyday flow of a conversation:
// - The seeded transcript with its read marker
// - Sending a message through the pending section
// - Delivery, the read marker moving down, and a reply
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Send a message, watch it deliver and get read",
	Width:       100,
	Height:      32,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		// Initial view - the seeded conversation
		demo.Annotate("A conversation with Ada"),
		demo.Wait(1500 * time.Millisecond),

		// Type and send a message
		demo.TypeWithDesc("Friday it is. I'll bring the release notes", "Compose a message"),
		demo.Wait(500 * time.Millisecond),
		demo.KeyWithDesc("enter", "Send"),
		demo.Annotate("Sent messages wait in the pending section"),
		demo.Wait(1500 * time.Millisecond),

		// The message is delivered and moves up into the log
		demo.Deliver(),
		demo.Annotate("Delivered"),
		demo.Wait(1 * time.Second),

		// Ada reads it; the read marker follows
		demo.Read(),
		demo.Annotate("The read marker moves to the newest read message"),
		demo.Wait(1500 * time.Millisecond),

		// And replies
		demo.Incoming("Perfect, see you then 👋"),
		demo.Wait(2 * time.Second),

		// Final pause
		demo.Wait(3 * time.Second),
	},
}

// Retry demonstrates a failed delivery and a retry from the list.
var Retry = &demo.Scenario{
	Name:        "retry",
	Description: "A delivery fails and is retried from the list",
	Width:       100,
	Height:      32,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),

		demo.Type("Did the build pass?"),
		demo.Key("enter"),
		demo.Wait(800 * time.Millisecond),

		demo.Fail(),
		demo.Annotate("Failed messages stay pending, marked with an error"),
		demo.Wait(2 * time.Second),

		// Select the failed message and tap it
		demo.KeyWithDesc("tab", "Focus the list"),
		demo.Wait(600 * time.Millisecond),
		demo.KeyWithDesc("enter", "Retry"),
		demo.Annotate("Tapping a failed message retries it"),
		demo.Wait(1 * time.Second),

		demo.Deliver(),
		demo.Wait(1 * time.Second),
		demo.Read(),
		demo.Wait(1 * time.Second),

		demo.Key("esc"),
		demo.Incoming("Green across the board ✅"),
		demo.Wait(3 * time.Second),
	},
}

// Selection demonstrates keyboard selection, copying and removing messages.
var Selection = &demo.Scenario{
	Name:        "selection",
	Description: "Select, copy and remove messages",
	Width:       100,
	Height:      32,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),

		demo.KeyWithDesc("tab", "Focus the list"),
		demo.Wait(500 * time.Millisecond),
		demo.Key("up"),
		demo.Wait(300 * time.Millisecond),
		demo.Key("up"),
		demo.Annotate("Rows are selected with the arrow keys"),
		demo.Wait(1 * time.Second),

		// Copying needs a clipboard, so the demo only shows the feedback
		demo.Flash("Copied to clipboard", ui.FlashSuccess),
		demo.Wait(1500 * time.Millisecond),

		demo.KeyWithDesc("delete", "Remove the message"),
		demo.Annotate("Removed rows animate out"),
		demo.Wait(1500 * time.Millisecond),

		demo.Key("?"),
		demo.Annotate("All shortcuts"),
		demo.Wait(3 * time.Second),
		demo.Key("?"),
		demo.Wait(1 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Retry,
		Selection,
		Comprehensive,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
