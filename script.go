package spritedit

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action  string  `json:"action"`
	Command string  `json:"command,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a recorded input script against an editor, one step
// per frame, through the synthetic pointer queue. Scripts drive automated
// editor tests and demo recordings:
//
//	{"steps": [
//	  {"action": "command", "command": "tool.fill"},
//	  {"action": "click", "x": 30, "y": 30},
//	  {"action": "wait", "frames": 10},
//	  {"action": "drag", "fromX": 10, "fromY": 10, "toX": 90, "toY": 10, "frames": 6}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has been executed and drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame: it lets queued pointer events
// drain first, counts down waits, then executes the next step.
func (r *ScriptRunner) Step(e *Editor) error {
	if r.done {
		return nil
	}
	if e.Step() {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "command":
		if err := e.Registry().Invoke(st.Command); err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor, err)
		}
	case "click":
		e.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		return fmt.Errorf("script step %d: unknown action %q", r.cursor, st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
	return nil
}

// Run drives the script to completion, advancing the editor's view
// animation at the given per-frame dt.
func (r *ScriptRunner) Run(e *Editor, dt float32) error {
	for !r.done {
		if err := r.Step(e); err != nil {
			return err
		}
		e.Update(dt)
	}
	return nil
}
