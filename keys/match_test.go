package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBindings() []Binding {
	return []Binding{
		{Trigger: "s", Command: "settings"},
		{Trigger: "c", Command: "copy"},
		{Trigger: "p", Command: "paste"},
	}
}

func TestMatchTrigger(t *testing.T) {
	combo := Combination{
		{Key: AltLeft, State: Pressed},
		{Key: "c", State: Pressed},
		{Key: "c", State: Released},
		{Key: AltLeft, State: Released},
	}

	name, ok := MatchTrigger(combo, testBindings())
	assert.True(t, ok)
	assert.Equal(t, "copy", name)
}

func TestMatchTriggerNoMatch(t *testing.T) {
	combo := Combination{
		{Key: AltLeft, State: Pressed},
		{Key: "x", State: Pressed},
		{Key: "x", State: Released},
		{Key: AltLeft, State: Released},
	}

	_, ok := MatchTrigger(combo, testBindings())
	assert.False(t, ok)
}

func TestMatchTriggerEarliestPressWins(t *testing.T) {
	// Both "c" and "p" are pressed; the earlier press decides.
	combo := Combination{
		{Key: "p", State: Pressed},
		{Key: "c", State: Pressed},
		{Key: "c", State: Released},
		{Key: "p", State: Released},
	}

	name, ok := MatchTrigger(combo, testBindings())
	assert.True(t, ok)
	assert.Equal(t, "paste", name)
}

func TestMatchTriggerFirstRegisteredWins(t *testing.T) {
	bindings := []Binding{
		{Trigger: "c", Command: "copy"},
		{Trigger: "c", Command: "clear"},
	}
	combo := Combination{
		{Key: "c", State: Pressed},
		{Key: "c", State: Released},
	}

	name, ok := MatchTrigger(combo, bindings)
	assert.True(t, ok)
	assert.Equal(t, "copy", name)
}

func TestMatchTriggerIgnoresReleases(t *testing.T) {
	// A release of a trigger key without a tracked press must not match.
	combo := Combination{
		{Key: "c", State: Released},
	}

	_, ok := MatchTrigger(combo, testBindings())
	assert.False(t, ok)

	_, ok = MatchTrigger(nil, testBindings())
	assert.False(t, ok)
}
