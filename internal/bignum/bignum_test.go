package bignum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestIsZero(t *testing.T) {
	n := New()
	if !n.IsZero() {
		t.Fatal("freshly constructed BigNum should be zero")
	}
	n.SetLimb(9, 1)
	if n.IsZero() {
		t.Fatal("BigNum with a nonzero limb should not be zero")
	}
}

func TestAddCarryPropagates(t *testing.T) {
	n := New()
	n.SetLimb(9, LimbMask)
	n.Add(1)
	assert.Equal(t, uint32(0), n.Limb(9))
	assert.Equal(t, uint32(1), n.Limb(8))
}

func TestAddNegativeBorrows(t *testing.T) {
	n := New()
	n.SetLimb(8, 1)
	n.Add(-1)
	assert.Equal(t, uint32(0), n.Limb(8))
	assert.Equal(t, uint32(LimbMask), n.Limb(9))
}

func TestMulAddDivModRoundTrip(t *testing.T) {
	n := New()
	n.MulAdd(10000, 1605)
	r := n.DivMod(10000)
	assert.Equal(t, uint64(1605), r)
	assert.True(t, n.IsZero())
}

// TestBigNumLaws checks the algebraic law a folding codec depends on: MulAdd(m, a)
// followed by DivMod(m) recovers a mod m and restores the pre-MulAdd value,
// for any BigNum state reachable by repeated small MulAdds. At most five
// MulAdds with m <= 1000000 are applied in total, so every value stays below
// 10^30 and within the 110-bit capacity.
func TestBigNumLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := New()
		steps := rapid.IntRange(0, 4).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			m := rapid.Uint64Range(2, 1000000).Draw(t, "m")
			a := rapid.Uint64Range(0, m-1).Draw(t, "a")
			n.MulAdd(m, a)
		}

		before := n.Clone()
		m := rapid.Uint64Range(2, 1000000).Draw(t, "finalM")
		a := rapid.Uint64Range(0, m-1).Draw(t, "finalA")

		n.MulAdd(m, a)
		r := n.DivMod(m)

		assert.Equal(t, a, r, "DivMod should recover the value MulAdd folded in")
		assert.Equal(t, before.limbs, n.limbs, "MulAdd followed by DivMod(m) should restore the prior state")
	})
}

// TestAddInverse checks add(n,k); add(n,-k) is the identity for k within
// limb capacity.
func TestAddInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := New()
		n.SetLimb(7, uint32(rapid.IntRange(0, LimbMask).Draw(t, "seed")))
		before := n.Clone()

		k := rapid.Int64Range(-1000, 1000).Draw(t, "k")
		n.Add(k)
		n.Add(-k)

		assert.Equal(t, before.limbs, n.limbs)
	})
}

func TestUint64RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint64Range(0, 1<<40).Draw(t, "v")
		n := New()
		n.Add(int64(v))
		assert.Equal(t, v, n.Uint64())
	})
}
