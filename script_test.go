package spritedit

import "testing"

func TestLoadScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "click", "x": 10, "y": 10},
		{"action": "wait", "frames": 3},
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 70, "toY": 10, "frames": 4}
	]}`)
	r, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 {
		t.Errorf("steps = %d, want 3", len(r.steps))
	}
	if r.Done() {
		t.Error("fresh runner reports done")
	}
}

func TestLoadScriptInvalid(t *testing.T) {
	if _, err := LoadScript([]byte("{not json")); err == nil {
		t.Error("want parse error")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("want error for empty script")
	}
}

func TestScriptRunnerClick(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(red)
	r, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 30, "y": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Run(e, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if !r.Done() {
		t.Error("runner not done")
	}
	if c, _ := e.Buffer().CellColor(Cell{1, 0}); c != red {
		t.Errorf("cell (1,0) = %v, want red", c)
	}
}

func TestScriptRunnerWaitCountsFrames(t *testing.T) {
	e := newTestEditor(t)
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	frames := 0
	for !r.Done() {
		if err := r.Step(e); err != nil {
			t.Fatal(err)
		}
		frames++
		if frames > 20 {
			t.Fatal("runner never finished")
		}
	}
	// 5 wait frames plus the finishing step.
	if frames != 6 {
		t.Errorf("frames = %d, want 6", frames)
	}
}

func TestScriptRunnerCommandAndDrag(t *testing.T) {
	e := newTestEditor(t)
	e.Engine().SetActiveColor(blue)
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "command", "command": "tool.eraser"},
		{"action": "command", "command": "tool.pencil"},
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 70, "toY": 10, "frames": 4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Run(e, 1.0/60); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		if c, _ := e.Buffer().CellColor(Cell{x, 0}); c != blue {
			t.Errorf("cell (%d,0) = %v, want blue", x, c)
		}
	}
}

func TestScriptRunnerUnknownCommand(t *testing.T) {
	e := newTestEditor(t)
	r, err := LoadScript([]byte(`{"steps": [{"action": "command", "command": "nope"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Run(e, 1.0/60); err == nil {
		t.Error("want error for unknown command")
	}
}

func TestScriptRunnerUnknownAction(t *testing.T) {
	e := newTestEditor(t)
	r, err := LoadScript([]byte(`{"steps": [{"action": "explode"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Step(e); err == nil {
		t.Error("want error for unknown action")
	}
}
