// Package demo generates recordings of parley. Scenarios drive the real app
// model with a deterministic peer and clock, so recordings are reproducible
// and need no terminal.
package demo

import (
	"fmt"
	"time"

	"github.com/zhubert/parley/internal/ui"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepIncoming makes the peer send a message.
	StepIncoming
	// StepDeliver completes the oldest in-flight delivery.
	StepDeliver
	// StepFail fails the oldest in-flight delivery.
	StepFail
	// StepRead makes the peer read our delivered messages.
	StepRead
	// StepFlash shows a flash message in the footer.
	StepFlash
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the current frame.
	StepAnnotate
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText and StepIncoming. An empty incoming text lets the
	// peer choose.
	Text string

	// For StepWait
	Duration time.Duration

	// For StepFlash
	FlashText string
	FlashType ui.FlashType

	// For StepAnnotate
	Annotation string
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the initial state for a demo.
type ScenarioSetup struct {
	// PeerName is the other participant
	PeerName string

	// Theme overrides the default theme
	Theme string

	// Empty starts without the seeded transcript
	Empty bool

	// Start is the demo clock's initial time. Wait steps advance it.
	Start time.Time

	// Seed makes the peer's choices reproducible
	Seed uint64
}

// DefaultStart is the demo clock's default starting time.
var DefaultStart = time.Date(2024, time.June, 14, 18, 4, 0, 0, time.UTC)

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		PeerName: "Ada",
		Start:    DefaultStart,
		Seed:     7,
	}
}

// Validate checks that the scenario is valid.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Start.IsZero() {
		s.Setup.Start = DefaultStart
	}
	for i, step := range s.Steps {
		switch step.Type {
		case StepKey:
			if step.Key == "" {
				return &ValidationError{Field: "Steps", Message: "key step without a key", Index: i}
			}
		case StepWait:
			if step.Duration < 0 {
				return &ValidationError{Field: "Steps", Message: "negative wait", Index: i}
			}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
	Index   int // Step index, for step errors
}

func (e *ValidationError) Error() string {
	if e.Field == "Steps" {
		return fmt.Sprintf("validation error: step %d: %s", e.Index, e.Message)
	}
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// TypeWithDesc creates a text typing step with a description.
func TypeWithDesc(text, description string) Step {
	return Step{
		Type:        StepTypeText,
		Text:        text,
		Description: description,
	}
}

// Incoming creates a step where the peer sends text.
func Incoming(text string) Step {
	return Step{
		Type: StepIncoming,
		Text: text,
	}
}

// IncomingAny creates a step where the peer sends a message of its choosing.
func IncomingAny() Step {
	return Step{Type: StepIncoming}
}

// Deliver creates a step that completes the oldest in-flight delivery.
func Deliver() Step {
	return Step{Type: StepDeliver}
}

// Fail creates a step that fails the oldest in-flight delivery.
func Fail() Step {
	return Step{Type: StepFail}
}

// Read creates a step where the peer reads our messages.
func Read() Step {
	return Step{Type: StepRead}
}

// Flash creates a step that shows a flash message.
func Flash(text string, flashType ui.FlashType) Step {
	return Step{
		Type:      StepFlash,
		FlashText: text,
		FlashType: flashType,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}
