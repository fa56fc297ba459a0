package core

// Action represents a semantic game action, abstracted from physical key presses.
// Front ends translate keys, mouse buttons and menus into these.
type Action int

const (
	ActionNone        Action = iota
	ActionThrust             // W, right mouse - forward impulse
	ActionBrake              // S - subtract a forward unit vector
	ActionRotateLeft         // A
	ActionRotateRight        // D
	ActionFire               // Tab, Space, left mouse
	ActionNudgeUp            // Up arrow
	ActionNudgeDown          // Down arrow
	ActionNudgeLeft          // Left arrow
	ActionNudgeRight         // Right arrow
	ActionDamp               // R - velocity x0.1
	ActionStop               // B - full stop
	ActionLevel1             // 1
	ActionLevel2             // 2
	ActionLevel3             // 3
	ActionTruce              // T
	ActionRegenerate         // G
	ActionPause              // P
	ActionRestart            // Enter after game over
	ActionBack               // Esc - back to menu
	ActionQuit               // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionThrust:      "Thrust",
	ActionBrake:       "Brake",
	ActionRotateLeft:  "RotateLeft",
	ActionRotateRight: "RotateRight",
	ActionFire:        "Fire",
	ActionNudgeUp:     "NudgeUp",
	ActionNudgeDown:   "NudgeDown",
	ActionNudgeLeft:   "NudgeLeft",
	ActionNudgeRight:  "NudgeRight",
	ActionDamp:        "Damp",
	ActionStop:        "Stop",
	ActionLevel1:      "Level1",
	ActionLevel2:      "Level2",
	ActionLevel3:      "Level3",
	ActionTruce:       "Truce",
	ActionRegenerate:  "Regenerate",
	ActionPause:       "Pause",
	ActionRestart:     "Restart",
	ActionBack:        "Back",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the input snapshot for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer position in screen cells, valid when HasPointer is set.
	HasPointer bool
	PointerX   float64
	PointerY   float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Point records a pointer position. It survives Clear, like a real cursor.
func (f *InputFrame) Point(x, y float64) {
	f.HasPointer = true
	f.PointerX, f.PointerY = x, y
}

// Clear resets all actions for the next frame. The pointer is kept.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
