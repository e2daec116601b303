// Package bignum implements the fixed-width multi-precision integer the IMB
// codec uses to hold the 102-bit tracking/routing payload.
package bignum

// NumLimbs is the number of 11-bit limbs in a BigNum.
const NumLimbs = 10

// LimbBits is the width, in bits, of a single limb.
const LimbBits = 11

// LimbMask masks a value down to LimbBits bits.
const LimbMask = (1 << LimbBits) - 1

// BigNum is a fixed-width non-negative integer represented as ten 11-bit
// limbs, most-significant limb first: value = sum(limb[i] * 2^(11*(9-i))).
// The maximum representable value is 2^110 - 1.
type BigNum struct {
	limbs [NumLimbs]uint32
}

// New returns a BigNum initialized to zero.
func New() *BigNum {
	return &BigNum{}
}

// Limb returns limb i (0 is most significant, 9 is least significant).
func (n *BigNum) Limb(i int) uint32 {
	return n.limbs[i]
}

// SetLimb sets limb i to v & LimbMask.
func (n *BigNum) SetLimb(i int, v uint32) {
	n.limbs[i] = v & LimbMask
}

// IsZero reports whether every limb is zero.
func (n *BigNum) IsZero() bool {
	for _, l := range n.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// Clone returns a copy of n.
func (n *BigNum) Clone() *BigNum {
	c := *n
	return &c
}

// Add adds k into the least-significant limb, propagating carries upward
// (toward the most significant limb). k may be negative; borrows propagate
// the same way. Overflowing past the most significant limb is undefined;
// callers must keep k within the BigNum's capacity.
func (n *BigNum) Add(k int64) {
	carry := k
	for i := NumLimbs - 1; i >= 0 && carry != 0; i-- {
		v := int64(n.limbs[i]) + carry
		n.limbs[i] = uint32(v & LimbMask)
		carry = v >> LimbBits
	}
}

// MulAdd replaces n with n*m + a, processing from the least-significant
// limb upward so every intermediate product (at most 2047*m) stays well
// within 64 bits.
func (n *BigNum) MulAdd(m uint64, a uint64) {
	carry := a
	for i := NumLimbs - 1; i >= 0; i-- {
		prod := uint64(n.limbs[i])*m + carry
		n.limbs[i] = uint32(prod & LimbMask)
		carry = prod >> LimbBits
	}
}

// DivMod replaces n with floor(n/d) and returns n mod d, processing from the
// most-significant limb downward with an 11-bit-shifted running remainder.
func (n *BigNum) DivMod(d uint64) uint64 {
	var rem uint64
	for i := 0; i < NumLimbs; i++ {
		cur := (rem << LimbBits) | uint64(n.limbs[i])
		n.limbs[i] = uint32(cur / d)
		rem = cur % d
	}
	return rem
}

// Uint64 reconstructs the full value as a uint64. Callers must only use this
// when the BigNum is known to hold a value under 2^64 — true of the routing
// remainder this codec uses it for, never true of a full tracking payload.
func (n *BigNum) Uint64() uint64 {
	var v uint64
	for i := 0; i < NumLimbs; i++ {
		v = (v << LimbBits) | uint64(n.limbs[i])
	}
	return v
}
