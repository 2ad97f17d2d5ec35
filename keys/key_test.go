package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyKind(t *testing.T) {
	tests := []struct {
		key  Key
		kind Kind
	}{
		{AltLeft, KindControl},
		{Esc, KindControl},
		{"7", KindDigit},
		{"0", KindDigit},
		{"c", KindAlpha},
		{"Z", KindAlpha},
		{"f1", KindOther},
		{"vk_0x2C", KindOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.key.Kind(), "key %q", tt.key)
	}
}

func TestKeyDigit(t *testing.T) {
	n, ok := Key("4").Digit()
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = Key("c").Digit()
	assert.False(t, ok)

	_, ok = AltLeft.Digit()
	assert.False(t, ok)
}

func TestCombinationEqual(t *testing.T) {
	a := Combination{{Key: "a", State: Pressed}, {Key: "a", State: Released}}
	b := Combination{{Key: "a", State: Pressed}, {Key: "a", State: Released}}
	assert.True(t, a.Equal(b))

	// Same events, different order.
	c := Combination{{Key: "a", State: Released}, {Key: "a", State: Pressed}}
	assert.False(t, a.Equal(c))

	assert.False(t, a.Equal(a[:1]))
	assert.True(t, Combination{}.Equal(nil))
}

func TestIsPrefix(t *testing.T) {
	sup := Combination{
		{Key: CtrlLeft, State: Pressed},
		{Key: "c", State: Pressed},
		{Key: "c", State: Released},
		{Key: CtrlLeft, State: Released},
	}

	sub := Combination{
		{Key: CtrlLeft, State: Pressed},
		{Key: "c", State: Pressed},
	}
	assert.True(t, IsPrefix(sub, sup))

	// Relative order matters: a reordered sub is not a prefix.
	reordered := Combination{
		{Key: "c", State: Pressed},
		{Key: CtrlLeft, State: Pressed},
	}
	assert.False(t, IsPrefix(reordered, sup))

	// Containment must be a contiguous leading run, not interleaved.
	gapped := Combination{
		{Key: CtrlLeft, State: Pressed},
		{Key: "c", State: Released},
	}
	assert.False(t, IsPrefix(gapped, sup))

	assert.True(t, IsPrefix(nil, sup))
	assert.False(t, IsPrefix(sup, sub))
}

func TestCombinationString(t *testing.T) {
	c := Combination{
		{Key: AltLeft, State: Pressed},
		{Key: "c", State: Pressed},
		{Key: "c", State: Released},
		{Key: AltLeft, State: Released},
	}
	assert.Equal(t, "alt_left+ c+ c- alt_left-", c.String())
}
