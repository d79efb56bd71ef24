package input

import "sync"

// Action represents a logical flight action, not a physical key
type Action int

// Action constants using iota
const (
	ActionThrust Action = iota
	ActionReverse
	ActionYawLeft
	ActionYawRight
	ActionReset
	ActionPause
	ActionToggleProfiling
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionThrust:          "thrust",
	ActionReverse:         "reverse",
	ActionYawLeft:         "yaw-left",
	ActionYawRight:        "yaw-right",
	ActionReset:           "reset",
	ActionPause:           "pause",
	ActionToggleProfiling: "toggle-profiling",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a name such as "thrust" back to its Action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Key is a platform key code. The platform layer decides the numbering;
// the manager only needs keys to be comparable.
type Key int

// Manager tracks held actions, per-frame press/release edges and the pointer
// movement accumulated since the last PostUpdate.
type Manager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[Key][]Action

	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	mouseDX, mouseDY float64
}

// NewManager returns a manager with no key bindings.
func NewManager() *Manager {
	return &Manager{keyToActions: make(map[Key][]Action)}
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., W and the up arrow)
func (m *Manager) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// HandleKey applies a key transition to every action bound to key.
func (m *Manager) HandleKey(key Key, pressed bool) {
	m.mu.RLock()
	actions, exists := m.keyToActions[key]
	m.mu.RUnlock()
	if !exists {
		return
	}
	for _, act := range actions {
		m.set(act, pressed)
	}
}

// Press marks an action as held, bypassing key bindings.
func (m *Manager) Press(action Action) { m.set(action, true) }

// Release marks an action as released, bypassing key bindings.
func (m *Manager) Release(action Action) { m.set(action, false) }

func (m *Manager) set(act Action, pressed bool) {
	if act < 0 || act >= ActionCount {
		return
	}
	m.mu.Lock()
	// Detect edges immediately when event arrives
	if pressed && !m.currentState[act] {
		m.justPressed[act] = true
	}
	if !pressed && m.currentState[act] {
		m.justReleased[act] = true
	}
	m.currentState[act] = pressed
	m.mu.Unlock()
}

// AddMouseDelta accumulates pointer movement until the next PostUpdate.
func (m *Manager) AddMouseDelta(dx, dy float64) {
	m.mu.Lock()
	m.mouseDX += dx
	m.mouseDY += dy
	m.mu.Unlock()
}

// MouseDelta returns the pointer movement accumulated this frame.
func (m *Manager) MouseDelta() (dx, dy float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mouseDX, m.mouseDY
}

// PostUpdate must be called at the end of each frame, after the controller
// has read the snapshot. It clears edges and the pointer delta.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
	m.mouseDX, m.mouseDY = 0, 0
}

// ReleaseAll drops every held action, e.g. when the window loses focus.
func (m *Manager) ReleaseAll() {
	for a := range ActionCount {
		m.set(a, false)
	}
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}
