package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableSizes(t *testing.T) {
	tb := Get()
	weight5Count, weight2Count := 0, 0
	for i := 0; i <= weight5Hi; i++ {
		_ = tb.Encode[i]
		weight5Count++
	}
	for i := weight2Lo; i <= weight2Hi; i++ {
		weight2Count++
	}
	assert.Equal(t, 1287, weight5Count)
	assert.Equal(t, 78, weight2Count)
	assert.Equal(t, NumCodewords, weight5Count+weight2Count)
}

func TestEveryCodewordWeight(t *testing.T) {
	tb := Get()
	for i := weight5Lo; i <= weight5Hi; i++ {
		assertWeight(t, tb.Encode[i], 5, i)
	}
	for i := weight2Lo; i <= weight2Hi; i++ {
		assertWeight(t, tb.Encode[i], 2, i)
	}
}

func assertWeight(t *testing.T, word uint16, want, idx int) {
	t.Helper()
	got := popcount(word)
	if got != want {
		t.Errorf("codeword %d: word %#04x has weight %d, want %d", idx, word, got, want)
	}
}

func popcount(x uint16) int {
	n := 0
	for x != 0 {
		n += int(x & 1)
		x >>= 1
	}
	return n
}

// TestDecodeRoundTrip checks that for every
// codeword index i, decode_table[encode_table[i]] == i and
// decode_table[encode_table[i] ^ 0x1FFF] == i, and the FCS table agrees on
// which of the two is the complemented form.
func TestDecodeRoundTrip(t *testing.T) {
	tb := Get()
	for i := 0; i < NumCodewords; i++ {
		word := tb.Encode[i]
		comp := word ^ wordMask

		assert.Equal(t, int16(i), tb.Decode[word], "decode(encode(%d)) should be %d", i, i)
		assert.Equal(t, int16(i), tb.Decode[comp], "decode(encode(%d)^0x1FFF) should be %d", i, i)
		assert.Equal(t, uint8(0), tb.FCS[word], "canonical word for %d should have fcs bit 0", i)
		assert.Equal(t, uint8(1), tb.FCS[comp], "complemented word for %d should have fcs bit 1", i)
	}
}

func TestGetIsMemoized(t *testing.T) {
	a := Get()
	b := Get()
	assert.Same(t, a, b, "Get should return the same singleton on repeated calls")
}
