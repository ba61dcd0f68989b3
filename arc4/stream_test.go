package arc4

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp() []byte {
	b := make([]byte, 256)
	for n := range b {
		b[n] = byte(n)
	}
	return b
}

func isPermutation(t *testing.T, as *Stream) {
	t.Helper()
	var seen [256]bool
	for _, v := range as.Permutation() {
		if seen[v] {
			t.Fatalf("value %d appears twice in table", v)
		}
		seen[v] = true
	}
}

func TestInit(t *testing.T) {
	as := New()
	perm := as.Permutation()
	for n := 0; n < 256; n++ {
		assert.Equal(t, byte(n), perm[n])
	}
	i, j := as.Cursors()
	assert.Zero(t, i)
	assert.Zero(t, j)
}

func TestRampPin(t *testing.T) {
	as := New()
	require.NoError(t, as.AddRandom(ramp()))

	i, j := as.Cursors()
	assert.Equal(t, uint8(255), i)
	assert.Equal(t, uint8(255), j)

	assert.Equal(t, byte(0x0d), as.Byte())
}

func TestRampWords(t *testing.T) {
	as := New()
	require.NoError(t, as.AddRandom(ramp()))
	assert.Equal(t, uint32(0x0d1dad90), as.Word())
	assert.Equal(t, uint32(0xb9ea34db), as.Word())
}

func TestShortKey(t *testing.T) {
	// A one-byte key is repeated across all 256 rounds.
	as := New()
	require.NoError(t, as.AddRandom([]byte{0x2a}))
	got := make([]byte, 4)
	as.Read(got)
	assert.Equal(t, []byte{33, 92, 171, 246}, got)
}

func TestRepeatedMix(t *testing.T) {
	as := New()
	require.NoError(t, as.AddRandom(ramp()))
	require.NoError(t, as.AddRandom([]byte("hello")))
	got := make([]byte, 4)
	as.Read(got)
	assert.Equal(t, []byte{36, 35, 40, 2}, got)
}

func TestWordPacking(t *testing.T) {
	a := New()
	b := New()
	require.NoError(t, a.AddRandom([]byte("word packing")))
	require.NoError(t, b.AddRandom([]byte("word packing")))

	for n := 0; n < 64; n++ {
		b0, b1, b2, b3 := b.Byte(), b.Byte(), b.Byte(), b.Byte()
		want := uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
		assert.Equal(t, want, a.Word())
	}
}

func TestDeterministic(t *testing.T) {
	key := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	stream := func() []byte {
		as := New()
		require.NoError(t, as.AddRandom(key))
		as.Discard(1024)
		out := make([]byte, 512)
		as.Read(out)
		return out
	}
	if !bytes.Equal(stream(), stream()) {
		t.Fatalf("keystreams differ for identical input")
	}
}

func TestDiscard(t *testing.T) {
	a := New()
	b := New()
	a.Discard(17)
	for n := 0; n < 17; n++ {
		b.Byte()
	}
	assert.Equal(t, b.Permutation(), a.Permutation())
	assert.Equal(t, b.Byte(), a.Byte())
}

func TestEmptyInput(t *testing.T) {
	as := New()
	require.NoError(t, as.AddRandom(ramp()))
	as.Byte()
	before := *as

	assert.ErrorIs(t, as.AddRandom(nil), ErrEmptyInput)
	assert.ErrorIs(t, as.AddRandom([]byte{}), ErrEmptyInput)
	assert.Equal(t, before, *as)
}

func TestPermutationHolds(t *testing.T) {
	as := New()
	isPermutation(t, as)
	require.NoError(t, as.AddRandom([]byte("permutation")))
	isPermutation(t, as)
	for n := 0; n < 4096; n++ {
		as.Byte()
		isPermutation(t, as)
	}
}

func FuzzAddRandom(f *testing.F) {
	f.Add(ramp())
	f.Add([]byte{0})
	f.Add([]byte("arc4random"))

	f.Fuzz(func(t *testing.T, b []byte) {
		as := New()
		err := as.AddRandom(b)
		if len(b) == 0 {
			if err == nil {
				t.Fatalf("empty input accepted")
			}
			return
		}
		if err != nil {
			t.Fatalf("add random: %v", err)
		}
		isPermutation(t, as)
		as.Discard(300)
		isPermutation(t, as)
	})
}
