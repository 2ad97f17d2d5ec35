// Package keys models raw keyboard input as ordered press/release
// combinations and matches them against registered trigger keys.
package keys

import "strings"

// Key identifies a physical or logical key, either a printable character
// ("a", "7") or a named control key ("alt_left"). Equality is by value.
type Key string

// Named control keys delivered by the platform key source.
const (
	AltLeft    Key = "alt_left"
	AltRight   Key = "alt_right"
	CtrlLeft   Key = "ctrl_left"
	CtrlRight  Key = "ctrl_right"
	ShiftLeft  Key = "shift_left"
	ShiftRight Key = "shift_right"
	WinLeft    Key = "win_left"
	WinRight   Key = "win_right"
	Esc        Key = "esc"
	Space      Key = "space"
	Enter      Key = "enter"
	Tab        Key = "tab"
	Backspace  Key = "backspace"
)

// Kind is a coarse classification of a key, used for display and
// configuration validation only. Matching never looks at it.
type Kind int

const (
	KindControl Kind = iota
	KindDigit
	KindAlpha
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindControl:
		return "control"
	case KindDigit:
		return "digit"
	case KindAlpha:
		return "alpha"
	default:
		return "other"
	}
}

var controlKeys = map[Key]struct{}{
	AltLeft: {}, AltRight: {},
	CtrlLeft: {}, CtrlRight: {},
	ShiftLeft: {}, ShiftRight: {},
	WinLeft: {}, WinRight: {},
	Esc: {}, Space: {}, Enter: {}, Tab: {}, Backspace: {},
}

// Kind classifies the key.
func (k Key) Kind() Kind {
	if _, ok := controlKeys[k]; ok {
		return KindControl
	}
	if len(k) == 1 {
		c := k[0]
		switch {
		case c >= '0' && c <= '9':
			return KindDigit
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			return KindAlpha
		}
	}
	return KindOther
}

// Digit returns the numeric value of a digit key.
func (k Key) Digit() (int, bool) {
	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		return int(k[0] - '0'), true
	}
	return 0, false
}

// State records whether a key went down or came back up.
type State int

const (
	Pressed State = iota
	Released
)

func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is a single key transition. Immutable once created.
type Event struct {
	Key   Key
	State State
}

func (e Event) String() string {
	if e.State == Pressed {
		return string(e.Key) + "+"
	}
	return string(e.Key) + "-"
}

// Combination is the ordered record of key events captured between a
// fully-released keyboard state and the next fully-released state.
// Entry order is temporal order; the Tracker guarantees a key
// contributes at most one Pressed and one Released entry per
// combination.
type Combination []Event

// Equal reports whether both combinations contain the same ordered
// sequence of (key, state) pairs.
func (c Combination) Equal(other Combination) bool {
	if len(c) != len(other) {
		return false
	}
	for i, e := range c {
		if e != other[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the combination records the given event.
func (c Combination) Contains(ev Event) bool {
	for _, e := range c {
		if e == ev {
			return true
		}
	}
	return false
}

func (c Combination) String() string {
	parts := make([]string, len(c))
	for i, e := range c {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// IsPrefix reports whether sub's entries appear at the head of sup, in
// order and without gaps. An empty sub is a prefix of anything.
func IsPrefix(sub, sup Combination) bool {
	if len(sub) > len(sup) {
		return false
	}
	for i, e := range sub {
		if sup[i] != e {
			return false
		}
	}
	return true
}
