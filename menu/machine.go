package menu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrRejected is returned by Trigger while another command is active.
var ErrRejected = errors.New("transition rejected")

// Machine is the finite state machine gating command execution: exactly
// one state is current at any instant, and a command can only be
// triggered from Idle. Entering a command state synchronously invokes
// the onEnter action; the machine never returns to Idle on its own, the
// dispatcher does that explicitly once a command reports completion.
//
// State is written only by the event-delivery goroutine; the lock exists
// for readers on other goroutines (dashboard status).
type Machine struct {
	mu      sync.RWMutex
	current Command
	onEnter func(Command)
}

// NewMachine creates a machine in the Idle state. onEnter runs as the
// side effect of every Idle->command transition.
func NewMachine(onEnter func(Command)) *Machine {
	return &Machine{current: Idle, onEnter: onEnter}
}

// Current returns the machine's current state.
func (m *Machine) Current() Command {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Trigger transitions Idle->cmd and runs the entry action. While any
// command is active the call is rejected and the state is unchanged.
func (m *Machine) Trigger(cmd Command) error {
	if cmd == Idle {
		return fmt.Errorf("%w: idle is not a command", ErrRejected)
	}

	m.mu.Lock()
	if m.current != Idle {
		active := m.current
		m.mu.Unlock()
		return fmt.Errorf("%w: %s is active", ErrRejected, active)
	}
	m.current = cmd
	m.mu.Unlock()

	slog.Info("state entered", "state", cmd.String())

	if m.onEnter != nil {
		m.onEnter(cmd)
	}
	return nil
}

// ReturnToIdle transitions to Idle from any state.
func (m *Machine) ReturnToIdle() {
	m.mu.Lock()
	prev := m.current
	m.current = Idle
	m.mu.Unlock()

	if prev != Idle {
		slog.Info("state entered", "state", Idle.String(), "from", prev.String())
	}
}
