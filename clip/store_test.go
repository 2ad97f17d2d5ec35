package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPasteRoundTrip(t *testing.T) {
	s := New(5)

	require.NoError(t, s.Copy(3, "hello"))

	text, err := s.Paste(3)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	// Paste is non-destructive.
	text, err = s.Paste(3)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestCopyBufferFull(t *testing.T) {
	s := New(2)

	require.NoError(t, s.Copy(1, "a"))
	require.NoError(t, s.Copy(2, "b"))

	err := s.Copy(3, "c")
	assert.ErrorIs(t, err, ErrBufferFull)

	// Store unchanged after the rejected copy.
	assert.Equal(t, []Slot{{Index: 1, Text: "a"}, {Index: 2, Text: "b"}}, s.List())
}

func TestCopyFullStoreRejectsOverwrite(t *testing.T) {
	// Capacity is count-based: overwriting an occupied index is still
	// rejected once the store is full.
	s := New(1)
	require.NoError(t, s.Copy(1, "a"))

	err := s.Copy(1, "b")
	assert.ErrorIs(t, err, ErrBufferFull)

	text, err := s.Paste(1)
	require.NoError(t, err)
	assert.Equal(t, "a", text)
}

func TestCopyOverwriteBelowCapacity(t *testing.T) {
	s := New(2)
	require.NoError(t, s.Copy(1, "a"))
	require.NoError(t, s.Copy(1, "b"))

	text, err := s.Paste(1)
	require.NoError(t, err)
	assert.Equal(t, "b", text)
	assert.Equal(t, 1, s.Len())
}

func TestPasteEmptySlot(t *testing.T) {
	s := New(5)

	_, err := s.Paste(5)
	assert.ErrorIs(t, err, ErrEmptySlot)
}

func TestClear(t *testing.T) {
	s := New(3)
	require.NoError(t, s.Copy(1, "a"))
	require.NoError(t, s.Copy(2, "b"))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())

	for _, index := range []int{1, 2} {
		_, err := s.Paste(index)
		assert.ErrorIs(t, err, ErrEmptySlot)
	}
}

func TestListAscendingOrder(t *testing.T) {
	s := New(5)
	require.NoError(t, s.Copy(4, "d"))
	require.NoError(t, s.Copy(1, "a"))
	require.NoError(t, s.Copy(3, "c"))

	list := s.List()
	require.Len(t, list, s.Len())
	assert.Equal(t, []Slot{
		{Index: 1, Text: "a"},
		{Index: 3, Text: "c"},
		{Index: 4, Text: "d"},
	}, list)
}

func TestAppend(t *testing.T) {
	s := New(3)

	i1, err := s.Append("a")
	require.NoError(t, err)
	assert.Equal(t, 1, i1)

	i2, err := s.Append("b")
	require.NoError(t, err)
	assert.Equal(t, 2, i2)

	_, err = s.Append("c")
	require.NoError(t, err)

	_, err = s.Append("d")
	assert.ErrorIs(t, err, ErrBufferFull)

	// Clear resets the append index.
	s.Clear()
	i, err := s.Append("e")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestAppendSkipsPastExplicitCopies(t *testing.T) {
	s := New(5)
	require.NoError(t, s.Copy(3, "c"))

	i, err := s.Append("d")
	require.NoError(t, err)
	assert.Equal(t, 4, i)
}
