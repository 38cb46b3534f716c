package chat

import (
	"fmt"
	"sync"
)

// Manager holds one controller per mode and a single active-mode pointer.
// Making the active mode explicit turns staleness-after-switch into a
// structural guarantee: activating a mode cancels the outgoing mode's
// in-flight stream, so an abandoned stream can never mutate a store that has
// moved on.
type Manager struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	active      string
}

// NewManager creates a manager over the given controllers. The first
// controller's mode starts active.
func NewManager(controllers ...*Controller) *Manager {
	m := &Manager{controllers: make(map[string]*Controller, len(controllers))}
	for _, c := range controllers {
		m.controllers[c.Mode().ID] = c
		if m.active == "" {
			m.active = c.Mode().ID
		}
	}
	return m
}

// Active returns the currently active controller.
func (m *Manager) Active() *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.controllers[m.active]
}

// ActiveID returns the active mode's ID.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Controller returns the controller for a mode ID.
func (m *Manager) Controller(modeID string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.controllers[modeID]
	return c, ok
}

// Activate switches the active mode, cancelling any stream the outgoing mode
// still has in flight.
func (m *Manager) Activate(modeID string) (*Controller, error) {
	m.mu.Lock()
	next, ok := m.controllers[modeID]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("unknown chat mode: %s", modeID)
	}
	if modeID == m.active {
		m.mu.Unlock()
		return next, nil
	}
	outgoing := m.controllers[m.active]
	m.active = modeID
	m.mu.Unlock()

	if outgoing != nil {
		outgoing.CancelInFlight()
	}
	return next, nil
}
