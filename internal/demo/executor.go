package demo

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/conversation"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// maxSettleSteps bounds how many commands one step may run.
const maxSettleSteps = 500

// ErrNothingInFlight is returned by deliver and fail steps when no message
// is waiting for delivery.
var ErrNothingInFlight = errors.New("no message in flight")

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // How long the frame stays on screen
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// SettleTimeout is how long a command may take before it is abandoned.
	// Row highlight ticks finish within it; flash expiry ticks do not.
	SettleTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false, // Don't capture every step by default for cleaner demos
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		SettleTimeout:    200 * time.Millisecond,
	}
}

// demoClock is the message clock. Wait steps advance it.
type demoClock struct {
	now time.Time
}

func (c *demoClock) Now() time.Time { return c.now }

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	clock  *demoClock
	frames []Frame

	// inFlight holds deliveries in the order they were scheduled. Scenarios
	// complete them explicitly.
	inFlight []app.DeliveredMsg

	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = DefaultExecutorConfig().SettleTimeout
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Model returns the app model driven by the last run.
func (e *Executor) Model() *app.Model { return e.model }

// InFlight returns the number of deliveries waiting for a deliver or fail
// step.
func (e *Executor) InFlight() int { return len(e.inFlight) }

// Cleanup detaches the session engine. Continuations still scheduled do
// nothing afterwards.
func (e *Executor) Cleanup() {
	if e.model != nil {
		e.model.Session().Close()
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	e.setup(scenario)
	defer e.Cleanup()

	log := logger.WithComponent("demo")
	log.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	// Execute each step
	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	log.Info("scenario finished", "name", scenario.Name, "frames", len(e.frames))
	return e.frames, nil
}

// setup initializes the model for the scenario.
func (e *Executor) setup(scenario *Scenario) {
	setup := scenario.Setup

	cfg := config.Defaults()
	if setup.PeerName != "" {
		cfg.SetPeerName(setup.PeerName)
	}
	if setup.Theme != "" {
		cfg.SetTheme(setup.Theme)
	}

	// Settle delays are real time; the executor runs them immediately
	engine := app.EngineOptions(cfg)
	engine.ScrollSettleDelay = 0
	engine.MoveSettleDelay = 0

	e.clock = &demoClock{now: setup.Start}
	e.frames = []Frame{}
	e.inFlight = nil
	e.currentAnnotation = ""

	e.model = app.New(cfg, app.Options{
		Version: "demo",
		Bot:     conversation.BotOptions{Seed: setup.Seed},
		Engine:  &engine,
		Now:     e.clock.Now,
		Empty:   setup.Empty,
	})

	e.settle(e.model.Init())
	e.settle(e.update(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	}))
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.clock.now = e.clock.now.Add(step.Duration)
		if step.Duration >= ui.DefaultFlashDuration {
			e.model.Footer().ClearFlash()
		}
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.sendKey(step.Key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.sendKey(string(ch))
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepIncoming:
		e.settle(e.update(app.IncomingMsg{Text: step.Text}))
		e.captureFrame(index, 200*time.Millisecond)

	case StepDeliver, StepFail:
		if len(e.inFlight) == 0 {
			return ErrNothingInFlight
		}
		msg := e.inFlight[0]
		e.inFlight = e.inFlight[1:]
		msg.Fail = step.Type == StepFail
		e.settle(e.update(msg))
		e.captureFrame(index, 300*time.Millisecond)

	case StepRead:
		e.settle(e.update(app.ReadMsg{}))
		e.captureFrame(index, 300*time.Millisecond)

	case StepFlash:
		// The expiry tick is not run; a long enough wait clears the flash
		e.model.ShowFlash(step.FlashText, step.FlashType)
		e.captureFrame(index, 100*time.Millisecond)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// update sends a message to the model.
func (e *Executor) update(msg tea.Msg) tea.Cmd {
	result, cmd := e.model.Update(msg)
	e.model = result.(*app.Model)
	return cmd
}

// settle runs cmd and every command that follows from it. Deliveries are
// held for the scenario, the peer reads only on a read step, and commands
// that outlast the settle timeout are abandoned.
func (e *Executor) settle(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxSettleSteps; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		msg, ok := e.await(c)
		if !ok {
			continue
		}

		switch msg := msg.(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case app.DeliveredMsg:
			e.inFlight = append(e.inFlight, msg)
		case app.ReadMsg, ui.FlashTickMsg:
		default:
			queue = append(queue, e.update(msg))
		}
	}
}

// await runs c, giving up after the settle timeout.
func (e *Executor) await(c tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()

	timer := time.NewTimer(e.config.SettleTimeout)
	defer timer.Stop()
	select {
	case msg := <-done:
		return msg, true
	case <-timer.C:
		return nil, false
	}
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	content := e.model.RenderToString()

	frame := Frame{
		Content:    content,
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// sendKey sends a key press to the model.
func (e *Executor) sendKey(key string) {
	e.settle(e.update(keyPress(key)))
}

// keyPress converts a key string to a tea.KeyPressMsg.
// Duplicated from the app tests, which are not importable.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "shift+enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "delete":
		return tea.KeyPressMsg{Code: tea.KeyDelete}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case "ctrl+r":
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case "ctrl+v":
		return tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}
	case "ctrl+y":
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
