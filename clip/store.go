// Package clip implements the bounded, indexed clipboard buffer.
package clip

import (
	"errors"
	"sort"
)

var (
	// ErrBufferFull is returned when a copy would exceed the slot capacity.
	ErrBufferFull = errors.New("clipboard buffer is full")
	// ErrEmptySlot is returned when pasting from an unoccupied slot.
	ErrEmptySlot = errors.New("clipboard slot is empty")
)

// Slot is one occupied cell of the buffer.
type Slot struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Store holds up to maxSize text slots keyed by a positive index.
// It is mutated only from within command handler execution, which runs
// on the single event-delivery sequence, so it does no locking itself.
type Store struct {
	maxSize int
	slots   map[int]string
	next    int
}

// New creates an empty store. maxSize must be positive; configuration
// validation enforces that before the store is built.
func New(maxSize int) *Store {
	return &Store{
		maxSize: maxSize,
		slots:   make(map[int]string),
		next:    1,
	}
}

// Copy stores text in the given slot. Capacity is checked by occupied
// slot count, not by index availability: a full store rejects the copy
// even when the index would only overwrite an existing slot. On failure
// the store is left unchanged.
func (s *Store) Copy(index int, text string) error {
	if len(s.slots) >= s.maxSize {
		return ErrBufferFull
	}
	s.slots[index] = text
	if index >= s.next {
		s.next = index + 1
	}
	return nil
}

// Append copies text into the next unassigned slot index and returns
// that index. The index counter only advances on success and resets
// when the store is cleared.
func (s *Store) Append(text string) (int, error) {
	index := s.next
	if err := s.Copy(index, text); err != nil {
		return 0, err
	}
	return index, nil
}

// Paste returns the text stored at index without removing it.
func (s *Store) Paste(index int) (string, error) {
	text, ok := s.slots[index]
	if !ok {
		return "", ErrEmptySlot
	}
	return text, nil
}

// Clear empties every slot and resets the append index.
func (s *Store) Clear() {
	s.slots = make(map[int]string)
	s.next = 1
}

// List returns the occupied slots in ascending index order.
func (s *Store) List() []Slot {
	out := make([]Slot, 0, len(s.slots))
	for index, text := range s.slots {
		out = append(out, Slot{Index: index, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of occupied slots.
func (s *Store) Len() int {
	return len(s.slots)
}

// MaxSize returns the slot capacity the store was created with.
func (s *Store) MaxSize() int {
	return s.maxSize
}
