// Package menu implements the command engine: a closed set of commands,
// the one-active-command-at-a-time state machine and the dispatcher that
// bridges finalized key combinations to command handlers.
package menu

import (
	"fmt"

	"clipdeck/keys"
)

// Command enumerates the machine's states: Idle plus one tag per
// command. The set is closed; adding a command means adding a variant
// here, a row in the registry and a handler in the dispatcher's table.
type Command int

const (
	Idle Command = iota
	Settings
	Copy
	Paste
	Help
	List
	Clear
)

func (c Command) String() string {
	switch c {
	case Idle:
		return "idle"
	case Settings:
		return "settings"
	case Copy:
		return "copy"
	case Paste:
		return "paste"
	case Help:
		return "help"
	case List:
		return "list"
	case Clear:
		return "clear"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Info describes one command for help output and trigger registration.
type Info struct {
	Command        Command
	Name           string
	Description    string
	DefaultTrigger keys.Key
}

// registry order defines binding registration order, and with it the
// first-registered-wins precedence of the matcher.
var registry = []Info{
	{Settings, "settings", "Open settings", "s"},
	{Copy, "copy", "Copy the system clipboard into the next slot", "c"},
	{Paste, "paste", "Paste a slot (press a digit to pick it)", "p"},
	{Help, "help", "Show the command table", "h"},
	{List, "list", "List occupied slots", "l"},
	{Clear, "clear", "Clear all slots", "r"},
}

// Commands returns the command registry in registration order.
func Commands() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

func commandByName(name string) (Command, bool) {
	for _, info := range registry {
		if info.Name == name {
			return info.Command, true
		}
	}
	return Idle, false
}

// Bindings builds the ordered trigger table, applying per-command
// trigger overrides from configuration. A malformed table (unknown
// command, non-printable trigger, duplicate trigger) is a startup
// error.
func Bindings(overrides map[string]string) ([]keys.Binding, error) {
	for name := range overrides {
		if _, ok := commandByName(name); !ok {
			return nil, fmt.Errorf("unknown command %q in trigger table", name)
		}
	}

	seen := make(map[keys.Key]string)
	bindings := make([]keys.Binding, 0, len(registry))
	for _, info := range registry {
		trigger := info.DefaultTrigger
		if override, ok := overrides[info.Name]; ok {
			trigger = keys.Key(override)
		}
		if kind := trigger.Kind(); kind != keys.KindAlpha && kind != keys.KindDigit {
			return nil, fmt.Errorf("command %q: trigger %q must be a letter or digit, got %s", info.Name, trigger, kind)
		}
		if prev, dup := seen[trigger]; dup {
			return nil, fmt.Errorf("trigger %q bound to both %q and %q", trigger, prev, info.Name)
		}
		seen[trigger] = info.Name
		bindings = append(bindings, keys.Binding{Trigger: trigger, Command: info.Name})
	}
	return bindings, nil
}
