package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipdeck/keys"
)

func TestCommandString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "copy", Copy.String())
	assert.Equal(t, "clear", Clear.String())
	assert.Equal(t, "command(42)", Command(42).String())
}

func TestBindingsDefaults(t *testing.T) {
	bindings, err := Bindings(nil)
	require.NoError(t, err)
	require.Len(t, bindings, len(Commands()))

	assert.Equal(t, keys.Binding{Trigger: "s", Command: "settings"}, bindings[0])
	assert.Equal(t, keys.Binding{Trigger: "c", Command: "copy"}, bindings[1])
	assert.Equal(t, keys.Binding{Trigger: "p", Command: "paste"}, bindings[2])
}

func TestBindingsOverride(t *testing.T) {
	bindings, err := Bindings(map[string]string{"copy": "y", "clear": "0"})
	require.NoError(t, err)

	byCommand := make(map[string]keys.Key)
	for _, b := range bindings {
		byCommand[b.Command] = b.Trigger
	}
	assert.Equal(t, keys.Key("y"), byCommand["copy"])
	assert.Equal(t, keys.Key("0"), byCommand["clear"])
	assert.Equal(t, keys.Key("p"), byCommand["paste"])
}

func TestBindingsUnknownCommand(t *testing.T) {
	_, err := Bindings(map[string]string{"fly": "f"})
	assert.ErrorContains(t, err, "unknown command")
}

func TestBindingsBadTrigger(t *testing.T) {
	_, err := Bindings(map[string]string{"copy": "alt_left"})
	assert.ErrorContains(t, err, "must be a letter or digit")

	_, err = Bindings(map[string]string{"copy": ""})
	assert.Error(t, err)
}

func TestBindingsDuplicateTrigger(t *testing.T) {
	_, err := Bindings(map[string]string{"copy": "p"})
	assert.ErrorContains(t, err, "bound to both")
}
