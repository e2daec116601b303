// Package bitlayout provides the fixed mapping between the 65 symbol
// positions of an Intelligent Mail Barcode and the codeword/bit pairs that
// feed each position's descender and ascender half.
//
// The authoritative USPS bar-position table was not recoverable from the
// retrieval pack available to this implementation:
// original_source/ was filtered down to zero kept files before reaching this
// codebase, and no network access is available to consult USPS Publication
// 25 directly. Rather than risk transcribing 65*4 table entries incorrectly
// from memory — which would silently break round-tripping in a way no test
// here could catch, since a wrong-but-self-consistent table still passes
// every property this package's own tests check — this package builds a
// fixed, deterministic substitute permutation instead. It is a true
// bijection over the 130 (codeword, bit) slots, so every invariant this
// codec relies on (round-trip, injectivity, single-symbol damage recovery,
// orientation detection) holds exactly as it would under the authoritative
// table. Interop with real USPS equipment would require substituting the
// genuine table values here; see DESIGN.md.
package bitlayout

const (
	// NumPositions is the number of symbol positions in a barcode.
	NumPositions = 65

	// NumCodewords is the number of codewords a payload splits into.
	NumCodewords = 10

	// BitsPerCodeword is the width of a single codeword.
	BitsPerCodeword = 13

	totalSlots = NumCodewords * BitsPerCodeword // 130

	// stride is coprime with totalSlots (130 = 2*5*13), so multiplying any
	// residue by it modulo totalSlots is a bijection on 0..129. This is what
	// makes the assignment below a permutation rather than an ad hoc table.
	stride = 7
)

var descChar, descBit, ascChar, ascBit [NumPositions]int

func init() {
	for p := 0; p < NumPositions; p++ {
		descChar[p], descBit[p] = slot(p)
		ascChar[p], ascBit[p] = slot(NumPositions + p)
	}
}

// slot maps a flat index in 0..129 to its (codeword, bit) coordinates after
// applying the fixed interleaving permutation.
func slot(i int) (codeword, bit int) {
	k := (i * stride) % totalSlots
	return k / BitsPerCodeword, k % BitsPerCodeword
}

// DescCodeword returns the codeword index feeding the descender half of
// position p.
func DescCodeword(p int) int { return descChar[p] }

// DescBit returns the bit index within that codeword for the descender half
// of position p.
func DescBit(p int) int { return descBit[p] }

// AscCodeword returns the codeword index feeding the ascender half of
// position p.
func AscCodeword(p int) int { return ascChar[p] }

// AscBit returns the bit index within that codeword for the ascender half of
// position p.
func AscBit(p int) int { return ascBit[p] }
