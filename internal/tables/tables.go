// Package tables builds and owns the three lookup tables the codeword
// transform is defined in terms of: which 13-bit binary word represents each
// codeword value, the reverse lookup, and which of the two complementary
// words is the FCS-bit-carrying one. The tables are a process-wide,
// read-only singleton built once at first use, the way reedsolomon/gf.go
// builds its Galois-field exp/log tables from a primitive polynomial scan.
package tables

import (
	"math/bits"
	"sync"
)

const (
	// NumCodewords is the size of encode_table: 1287 weight-5 indices (636
	// forward/reverse pairs plus 15 palindromes), plus 78 weight-2 indices
	// (36 pairs plus 6 palindromes).
	NumCodewords = 1365

	// wordSpace is the number of distinct 13-bit binary words (2^13).
	wordSpace = 1 << 13

	wordMask = wordSpace - 1

	weight5Lo, weight5Hi = 0, 1286
	weight2Lo, weight2Hi = 1287, 1364
)

// Tables holds the three fixed lookup arrays the codeword transform needs.
type Tables struct {
	// Encode maps a codeword index to its canonical (non-complemented) 13-bit
	// binary word.
	Encode [NumCodewords]uint16

	// Decode maps a 13-bit binary word to its codeword index, or -1 if the
	// word is not a valid codeword (neither a canonical word nor its
	// complement).
	Decode [wordSpace]int16

	// FCS reports, for a valid 13-bit word, whether it is the complemented
	// form (1) or the canonical forward form (0).
	FCS [wordSpace]uint8
}

var (
	once      sync.Once
	singleton *Tables
)

// Get returns the process-wide Tables, building it on the first call. The
// construction itself is a short, deterministic scan of the 8192 possible
// 13-bit words; sync.Once guards it so concurrent first callers block on a
// single build instead of racing, and every reader thereafter sees the
// frozen result without further synchronization.
func Get() *Tables {
	once.Do(func() {
		singleton = build()
	})
	return singleton
}

func build() *Tables {
	t := &Tables{}
	for i := range t.Decode {
		t.Decode[i] = -1
	}

	assignWeightClass(t, 5, weight5Lo, weight5Hi)
	assignWeightClass(t, 2, weight2Lo, weight2Hi)

	return t
}

// assignWeightClass scans fwd over the full 13-bit word space in ascending
// order, assigning codeword indices to every word of the given weight. Pairs
// of non-palindromic words (fwd, reverse(fwd)) are assigned ascending from
// low; the rare self-reverse palindrome of a weight class is assigned
// descending from hi. This fwd-ascending scan order is what produces the
// canonical USPS codeword numbering.
func assignWeightClass(t *Tables, weight, low, hi int) {
	for fwd := 0; fwd < wordSpace; fwd++ {
		if bits.OnesCount16(uint16(fwd)) != weight {
			continue
		}
		rev := int(reverse13(uint16(fwd)))

		switch {
		case fwd == rev:
			idx := hi
			hi--
			assignCodeword(t, idx, uint16(fwd))
		case fwd < rev:
			idx1, idx2 := low, low+1
			low += 2
			assignCodeword(t, idx1, uint16(fwd))
			assignCodeword(t, idx2, uint16(rev))
		default:
			// fwd > rev: already assigned when fwd was reverse's value.
		}
	}
}

// assignCodeword records word as the canonical form of codeword index idx,
// and registers both word and its bit-complement in the decode/FCS tables.
func assignCodeword(t *Tables, idx int, word uint16) {
	t.Encode[idx] = word
	comp := word ^ wordMask

	t.Decode[word] = int16(idx)
	t.Decode[comp] = int16(idx)
	t.FCS[word] = 0
	t.FCS[comp] = 1
}

// reverse13 reverses the low 13 bits of x.
func reverse13(x uint16) uint16 {
	var r uint16
	for i := 0; i < 13; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}
