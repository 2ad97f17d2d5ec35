// Package platform isolates the operating-system primitives the agent
// depends on: the raw keyboard event source, the system clipboard and
// keystroke simulation.
package platform

import (
	"context"

	"clipdeck/keys"
)

// KeyEvent is one raw key transition delivered by the OS hook.
type KeyEvent struct {
	Key     keys.Key
	Pressed bool
}

// KeySource delivers raw press/release events for every key. Events are
// produced by a single OS callback context; consumers must drain the
// channel promptly to avoid dropped events.
type KeySource interface {
	Events(ctx context.Context) (<-chan KeyEvent, error)
}

// Clipboard provides system clipboard access.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Paster simulates a paste keystroke in the focused application.
type Paster interface {
	Paste() error
}
