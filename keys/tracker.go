package keys

// Tracker converts a stream of raw press/release events into finalized
// Combinations. It owns the set of currently held keys and the open
// combination being accumulated.
//
// Tracker is single-writer: only the event-delivery goroutine may call
// OnPress and OnRelease, so no locking is done here.
type Tracker struct {
	held map[Key]struct{}
	open Combination
}

// NewTracker returns a tracker with no held keys.
func NewTracker() *Tracker {
	return &Tracker{held: make(map[Key]struct{})}
}

// OnPress records a key going down. Hardware auto-repeat delivers
// duplicate presses for a held key; those are ignored. A key re-pressed
// after being released within the open combination (a double-tap under
// a held modifier) is tracked as held again but contributes no second
// Pressed entry: each key appears at most once per state per
// combination.
func (t *Tracker) OnPress(k Key) {
	if _, ok := t.held[k]; ok {
		return
	}
	t.held[k] = struct{}{}
	if !t.open.Contains(Event{Key: k, State: Pressed}) {
		t.open = append(t.open, Event{Key: k, State: Pressed})
	}
}

// OnRelease records a key coming up. Releases of keys that were never
// tracked as held are ignored. When the last held key is released the
// open combination is finalized: a snapshot is returned with ok=true and
// the tracker resets for the next combination.
func (t *Tracker) OnRelease(k Key) (Combination, bool) {
	if _, ok := t.held[k]; !ok {
		return nil, false
	}
	delete(t.held, k)
	if !t.open.Contains(Event{Key: k, State: Released}) {
		t.open = append(t.open, Event{Key: k, State: Released})
	}

	if len(t.held) > 0 {
		return nil, false
	}

	snapshot := t.open
	t.open = nil
	return snapshot, true
}

// HeldCount returns how many keys are currently down.
func (t *Tracker) HeldCount() int {
	return len(t.held)
}

// Held reports whether the given key is currently down.
func (t *Tracker) Held(k Key) bool {
	_, ok := t.held[k]
	return ok
}
