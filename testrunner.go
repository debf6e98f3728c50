package hoverfx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
var ErrEmptyScript = errors.New("no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	ID       int     `json:"id,omitempty"`
	Index    int     `json:"index,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, programmatic transitions, resizes and
// screenshots across frames. Attach it to an effect with SetTestRunner.
//
// Actions:
//
//	move        {"x", "y"}              synthetic mouse move
//	enter       {}                      mouse move to the container centre
//	leave       {}                      mouse move outside the container
//	touchStart  {"id", "x", "y"}        synthetic touch start
//	touchEnd    {"id"}                  synthetic touch end
//	tap         {"x", "y"}              touch start and end
//	next, previous                      programmatic transition
//	transition  {"index", "duration"}   TransitionTo
//	resize      {"width", "height"}     resize a *Region container, then HandleResize
//	wait        {"frames"}              do nothing for n frames
//	screenshot  {"label"}               capture the surface on the next Draw
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("hoverfx: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("hoverfx: parse test script: %w", ErrEmptyScript)
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. Its step method runs at the start of
// every Update, before input is processed.
func (e *Effect) SetTestRunner(runner *TestRunner) {
	if e.disposed {
		return
	}
	e.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(e *Effect) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.binder.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	b := e.cfg.Container.Bounds()
	switch st.Action {
	case "move":
		e.InjectPointerMove(st.X, st.Y)
	case "enter":
		e.InjectPointerMove(b.X+b.Width/2, b.Y+b.Height/2)
	case "leave":
		e.InjectPointerMove(b.X-1, b.Y-1)
	case "touchStart":
		e.InjectTouchStart(st.ID, st.X, st.Y)
	case "touchEnd":
		e.InjectTouchEnd(st.ID)
	case "tap":
		e.InjectTap(st.X, st.Y)
	case "next":
		e.Next()
	case "previous":
		e.Previous()
	case "transition":
		e.TransitionTo(st.Index, st.Duration)
	case "resize":
		if region, ok := e.cfg.Container.(*Region); ok {
			region.SetSize(st.Width, st.Height)
		}
		e.HandleResize()
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		Logger().Debug("hoverfx: unknown test step", "action", st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.binder.injectQueue) == 0 {
		r.done = true
	}
}
