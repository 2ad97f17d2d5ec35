package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"clipdeck/clip"
	"clipdeck/keys"
	"clipdeck/platform"
)

// Result describes one handled command for observers (journal, dashboard).
type Result struct {
	Command string `json:"command"`
	Slot    int    `json:"slot,omitempty"`
	Chars   int    `json:"chars,omitempty"`
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// Observer receives a Result per handled command.
type Observer interface {
	Observe(Result)
}

// Options wires the dispatcher's collaborators. Store, Bindings and
// Clipboard are required; a nil Paster disables keystroke simulation.
type Options struct {
	Bindings   []keys.Binding
	Modifier   keys.Key // activation modifier; empty disables the gate
	CancelKey  keys.Key // aborts an active command
	Store      *clip.Store
	Clipboard  platform.Clipboard
	Paster     platform.Paster
	Observer   Observer
	ConfigPath string
}

type handlerSet struct {
	run      func() (done bool, err error)
	followUp func(keys.Combination) (done bool, err error)
}

// Dispatcher routes finalized combinations: trigger matching from Idle,
// follow-up key handling while a command is active. It owns the state
// machine and the variant-to-handler map, both built once at startup.
type Dispatcher struct {
	machine   *Machine
	bindings  []keys.Binding
	modifier  keys.Key
	cancelKey keys.Key
	store     *clip.Store
	clipboard platform.Clipboard
	paster    platform.Paster
	observer  Observer
	config    string
	handlers  map[Command]handlerSet
}

// NewDispatcher validates the binding table and builds the handler map.
func NewDispatcher(opts Options) (*Dispatcher, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("dispatcher requires a clipboard store")
	}
	if opts.Clipboard == nil {
		return nil, fmt.Errorf("dispatcher requires a system clipboard")
	}
	for _, b := range opts.Bindings {
		if _, ok := commandByName(b.Command); !ok {
			return nil, fmt.Errorf("binding %q -> %q: unknown command", b.Trigger, b.Command)
		}
	}

	d := &Dispatcher{
		bindings:  opts.Bindings,
		modifier:  opts.Modifier,
		cancelKey: opts.CancelKey,
		store:     opts.Store,
		clipboard: opts.Clipboard,
		paster:    opts.Paster,
		observer:  opts.Observer,
		config:    opts.ConfigPath,
	}
	d.machine = NewMachine(d.enter)
	d.handlers = map[Command]handlerSet{
		Settings: {run: d.runSettings},
		Copy:     {run: d.runCopy},
		Paste:    {run: d.runPaste, followUp: d.pasteFollowUp},
		Help:     {run: d.runHelp},
		List:     {run: d.runList},
		Clear:    {run: d.runClear},
	}
	return d, nil
}

// Machine exposes the state machine for status reporting.
func (d *Dispatcher) Machine() *Machine {
	return d.machine
}

// HandleCombination processes one finalized combination. It runs on the
// event-delivery goroutine; handlers execute synchronously inside it.
func (d *Dispatcher) HandleCombination(combo keys.Combination) {
	if len(combo) == 0 {
		return
	}
	slog.Debug("combination finalized", "combo", combo.String())

	if active := d.machine.Current(); active != Idle {
		d.handleWhileActive(active, combo)
		return
	}

	if !d.armed(combo) {
		return
	}
	name, ok := keys.MatchTrigger(combo, d.bindings)
	if !ok {
		// Unknown trigger: silently dropped.
		return
	}
	cmd, _ := commandByName(name)
	if err := d.machine.Trigger(cmd); err != nil {
		d.reject(name, err)
	}
}

func (d *Dispatcher) handleWhileActive(active Command, combo keys.Combination) {
	if d.cancelKey != "" && combo.Contains(keys.Event{Key: d.cancelKey, State: keys.Pressed}) {
		slog.Info("command cancelled", "command", active.String())
		d.observe(Result{Command: active.String(), Detail: "cancelled"})
		d.machine.ReturnToIdle()
		return
	}

	// A fresh trigger while a command is active is a rejected transition.
	if d.armed(combo) {
		if name, ok := keys.MatchTrigger(combo, d.bindings); ok {
			cmd, _ := commandByName(name)
			if err := d.machine.Trigger(cmd); err != nil {
				d.reject(name, err)
			}
			return
		}
	}

	hs := d.handlers[active]
	if hs.followUp == nil {
		return
	}
	done, err := hs.followUp(combo)
	if err != nil {
		slog.Error("command failed", "command", active.String(), "error", err)
	}
	if done || err != nil {
		d.machine.ReturnToIdle()
	}
}

// enter is the machine's transition side effect: run the command's
// handler, then return to Idle unless it stays resident for follow-up
// keys.
func (d *Dispatcher) enter(cmd Command) {
	hs, ok := d.handlers[cmd]
	if !ok || hs.run == nil {
		d.machine.ReturnToIdle()
		return
	}
	done, err := hs.run()
	if err != nil {
		slog.Error("command failed", "command", cmd.String(), "error", err)
	}
	if done || err != nil {
		d.machine.ReturnToIdle()
	}
}

// armed reports whether the combination starts with the activation
// modifier press.
func (d *Dispatcher) armed(combo keys.Combination) bool {
	if d.modifier == "" {
		return true
	}
	prefix := keys.Combination{{Key: d.modifier, State: keys.Pressed}}
	return keys.IsPrefix(prefix, combo)
}

func (d *Dispatcher) observe(r Result) {
	if d.observer != nil {
		d.observer.Observe(r)
	}
}

func (d *Dispatcher) reject(name string, err error) {
	slog.Warn("transition rejected", "command", name, "error", err)
	d.observe(Result{Command: name, Detail: "rejected"})
}

func (d *Dispatcher) triggerFor(name string) keys.Key {
	for _, b := range d.bindings {
		if b.Command == name {
			return b.Trigger
		}
	}
	return ""
}

func firstDigit(combo keys.Combination) (int, bool) {
	for _, e := range combo {
		if e.State != keys.Pressed {
			continue
		}
		if n, ok := e.Key.Digit(); ok {
			return n, true
		}
	}
	return 0, false
}

func (d *Dispatcher) runSettings() (bool, error) {
	slog.Info("settings opened", "config", d.config)
	d.observe(Result{Command: Settings.String(), Success: true})
	return true, nil
}

func (d *Dispatcher) runCopy() (bool, error) {
	text, err := d.clipboard.Get()
	if err != nil {
		d.observe(Result{Command: Copy.String(), Detail: "clipboard read failed"})
		return true, fmt.Errorf("read system clipboard: %w", err)
	}
	if text == "" {
		slog.Info("nothing to copy, system clipboard holds no text")
		d.observe(Result{Command: Copy.String(), Detail: "system clipboard empty"})
		return true, nil
	}

	index, err := d.store.Append(text)
	if errors.Is(err, clip.ErrBufferFull) {
		slog.Warn("copy rejected, buffer is full", "max_slots", d.store.MaxSize())
		d.observe(Result{Command: Copy.String(), Detail: "buffer full"})
		return true, nil
	}

	slog.Info("text copied", "slot", index, "chars", len(text))
	d.observe(Result{Command: Copy.String(), Slot: index, Chars: len(text), Success: true})
	return true, nil
}

// runPaste arms the paste command; the slot is picked by a follow-up
// digit key, so the command stays active.
func (d *Dispatcher) runPaste() (bool, error) {
	slog.Info("paste armed, press a slot digit", "occupied", d.store.Len())
	return false, nil
}

func (d *Dispatcher) pasteFollowUp(combo keys.Combination) (bool, error) {
	slot, ok := firstDigit(combo)
	if !ok {
		// Not a slot pick; keep waiting.
		return false, nil
	}

	text, err := d.store.Paste(slot)
	if errors.Is(err, clip.ErrEmptySlot) {
		// Stay armed so the user can pick another slot or cancel.
		slog.Warn("paste failed, slot is empty", "slot", slot)
		d.observe(Result{Command: Paste.String(), Slot: slot, Detail: "empty slot"})
		return false, nil
	}

	if err := d.clipboard.Set(text); err != nil {
		d.observe(Result{Command: Paste.String(), Slot: slot, Detail: "clipboard write failed"})
		return true, fmt.Errorf("write system clipboard: %w", err)
	}

	slog.Info("text pasted", "slot", slot, "chars", len(text))
	d.observe(Result{Command: Paste.String(), Slot: slot, Chars: len(text), Success: true})

	// Keystroke simulation can block briefly; fire and forget.
	if d.paster != nil {
		go func() {
			if err := d.paster.Paste(); err != nil {
				slog.Error("paste simulation failed", "error", err)
			}
		}()
	}
	return true, nil
}

func (d *Dispatcher) runHelp() (bool, error) {
	for _, info := range Commands() {
		slog.Info("command",
			"name", info.Name,
			"trigger", string(d.triggerFor(info.Name)),
			"description", info.Description,
		)
	}
	d.observe(Result{Command: Help.String(), Success: true})
	return true, nil
}

func (d *Dispatcher) runList() (bool, error) {
	slots := d.store.List()
	if len(slots) == 0 {
		slog.Info("clipboard buffer is empty")
	}
	for _, s := range slots {
		slog.Info("slot", "index", s.Index, "chars", len(s.Text))
	}
	d.observe(Result{Command: List.String(), Success: true})
	return true, nil
}

func (d *Dispatcher) runClear() (bool, error) {
	freed := d.store.Len()
	d.store.Clear()
	slog.Info("clipboard buffer cleared", "slots_freed", freed)
	d.observe(Result{Command: Clear.String(), Success: true})
	return true, nil
}
