package scenarios

import (
	"time"

	"github.com/zhubert/parley/internal/demo"
)

// Comprehensive exercises everything the chat log does in one recording.
// The flow is:
// 1. Start from an empty conversation and receive the first messages
// 2. Send several messages so the pending section fills up
// 3. Deliver them out of the pending section one by one, failing one
// 4. Retry the failure, let the peer read and reply with a burst of messages
// 5. Browse the log, reload it, and remove a message
var Comprehensive = &demo.Scenario{
	Name:        "comprehensive",
	Description: "Every chat log feature, from an empty conversation",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		PeerName: "Grace",
		Empty:    true,
		Start:    demo.DefaultStart,
		Seed:     42,
	},
	Steps: []demo.Step{
		// === Empty conversation ===
		demo.Wait(1 * time.Second),

		demo.Incoming("Hey! Are you around?"),
		demo.Wait(800 * time.Millisecond),
		demo.Incoming("I have a question about the pending section"),
		demo.Wait(1 * time.Second),

		// === Fill the pending section ===
		demo.Type("Sure, go ahead"),
		demo.Key("enter"),
		demo.Wait(400 * time.Millisecond),
		demo.Type("Messages stay there until the server confirms them"),
		demo.Key("enter"),
		demo.Wait(400 * time.Millisecond),
		demo.Type("Then they move up into the log"),
		demo.Key("enter"),
		demo.Annotate("Three messages in flight"),
		demo.Wait(1500 * time.Millisecond),

		// === Deliveries ===
		demo.Deliver(),
		demo.Wait(600 * time.Millisecond),
		demo.Fail(),
		demo.Annotate("The second delivery failed"),
		demo.Wait(1500 * time.Millisecond),
		demo.Deliver(),
		demo.Annotate("Later messages can still go through"),
		demo.Wait(1500 * time.Millisecond),

		// === Retry the failure ===
		demo.Key("tab"),
		demo.Wait(400 * time.Millisecond),
		demo.Key("enter"),
		demo.Wait(600 * time.Millisecond),
		demo.Deliver(),
		demo.Wait(1 * time.Second),
		demo.Key("esc"),

		// === Read and reply ===
		demo.Read(),
		demo.Annotate("Grace read everything"),
		demo.Wait(1500 * time.Millisecond),
		demo.Incoming("Makes sense, thanks!"),
		demo.Wait(500 * time.Millisecond),
		demo.IncomingAny(),
		demo.Wait(500 * time.Millisecond),
		demo.IncomingAny(),
		demo.Wait(1500 * time.Millisecond),

		// === Multi-line message ===
		demo.Type("Here's the rule of thumb:"),
		demo.Key("shift+enter"),
		demo.Type("pending rows never mix with the log"),
		demo.Key("enter"),
		demo.Wait(800 * time.Millisecond),
		demo.Deliver(),
		demo.Wait(1 * time.Second),

		// === Browse, reload, remove ===
		demo.Key("tab"),
		demo.Key("up"),
		demo.Key("up"),
		demo.Key("up"),
		demo.Annotate("Browsing the log"),
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc("ctrl+r", "Reload"),
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc("delete", "Remove"),
		demo.Wait(1500 * time.Millisecond),
		demo.Key("esc"),

		// Final pause
		demo.Wait(3 * time.Second),
	},
}
