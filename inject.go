package spritedit

// syntheticPointerEvent represents a single injected pointer event in
// screen coordinates, converted through the live transform exactly like
// real input.
type syntheticPointerEvent struct {
	screen  Vec2
	pressed bool
	button  MouseButton
}

// InjectPress queues a primary-button press at the given screen position.
// The event is consumed by the next Step call.
func (e *Editor) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{
		screen: Vec2{X: x, Y: y}, pressed: true, button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (e *Editor) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{
		screen: Vec2{X: x, Y: y}, pressed: true, button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release at the given screen position.
func (e *Editor) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{
		screen: Vec2{X: x, Y: y}, pressed: false, button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same position.
func (e *Editor) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), steps-2 linearly
// interpolated moves, and release at (toX, toY). Minimum steps is 2.
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 2 {
		steps = 2
	}
	e.InjectPress(fromX, fromY)
	for i := 1; i <= steps-2; i++ {
		t := float64(i) / float64(steps-1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// Step consumes one queued synthetic event and routes it through the tool
// engine like real pointer input. Returns false when the queue is empty.
func (e *Editor) Step() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	e.injectQueue = e.injectQueue[1:]

	switch {
	case ev.pressed && !e.injectDown:
		e.injectDown = true
		e.engine.PointerDown(ev.screen, ev.button)
	case ev.pressed && e.injectDown:
		e.engine.PointerMove(ev.screen)
	default:
		e.injectDown = false
		// The release position still extends the stroke; dropping it
		// would leave the drag's final cells unpainted.
		e.engine.PointerMove(ev.screen)
		e.engine.PointerUp(ev.screen, ev.button)
	}
	return true
}

// DrainInjected runs Step until the synthetic queue is empty.
func (e *Editor) DrainInjected() {
	for e.Step() {
	}
}
