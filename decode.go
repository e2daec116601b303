package imb

import (
	"strconv"
	"strings"

	"github.com/erajkhatiwada/imb/internal/bignum"
	"github.com/erajkhatiwada/imb/internal/bitlayout"
	"github.com/erajkhatiwada/imb/internal/fcs"
	"github.com/erajkhatiwada/imb/internal/tables"
)

// Decode recovers a Record from a symbol string, attempting length and
// bit-flip repair when the input isn't a clean 65-symbol barcode.
func Decode(s string) (DecodeResult, error) {
	s = normalizeSymbols(s)

	switch len(s) {
	case bitlayout.NumPositions:
		if !allValidSymbols(s) {
			return DecodeResult{}, decodingErr(ReasonInvalidSymbol)
		}
		if rec, ok := tryDecode(s); ok {
			return DecodeResult{Record: rec}, nil
		}
		return repairFrom65(s)
	case bitlayout.NumPositions - 1, bitlayout.NumPositions + 1:
		if !allValidSymbols(s) {
			return DecodeResult{}, decodingErr(ReasonInvalidSymbol)
		}
		return lengthRepair(s)
	default:
		return DecodeResult{}, decodingErr(ReasonLength)
	}
}

func normalizeSymbols(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func allValidSymbols(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case symbolTracker, symbolAscender, symbolDescender, symbolFull:
		default:
			return false
		}
	}
	return true
}

// tryDecode runs the full strict parse-words-and-decode pipeline on a
// 65-symbol string already known to use only valid symbols.
func tryDecode(s string) (Record, bool) {
	words := symbolsToWords(s)
	cw, fcsBits, ok := wordsToCodewords(words)
	if !ok {
		return Record{}, false
	}
	return codewordsToRecord(cw, fcsBits)
}

// symbolsToWords builds the ten 13-bit codeword words from 65 symbols via
// the fixed bit layout.
func symbolsToWords(s string) [bitlayout.NumCodewords]uint16 {
	var words [bitlayout.NumCodewords]uint16
	for p := 0; p < bitlayout.NumPositions; p++ {
		switch s[p] {
		case symbolDescender, symbolFull:
			words[bitlayout.DescCodeword(p)] |= 1 << uint(bitlayout.DescBit(p))
		}
		switch s[p] {
		case symbolAscender, symbolFull:
			words[bitlayout.AscCodeword(p)] |= 1 << uint(bitlayout.AscBit(p))
		}
	}
	return words
}

// wordsToCodewords resolves each word to a codeword index via decode_table
// and accumulates the ten complement-carried FCS bits.
func wordsToCodewords(words [bitlayout.NumCodewords]uint16) (cw [bitlayout.NumCodewords]int, fcsBits uint16, ok bool) {
	t := tables.Get()
	for i := 0; i < bitlayout.NumCodewords; i++ {
		idx := t.Decode[words[i]]
		if idx < 0 {
			return cw, 0, false
		}
		cw[i] = int(idx)
		fcsBits |= uint16(t.FCS[words[i]]) << uint(i)
	}
	if cw[0] > 1317 || cw[9] > 1270 {
		return cw, 0, false
	}
	return cw, fcsBits, true
}

// codewordsToRecord runs the orientation-evenness check, the out-of-band FCS
// bit 10 extraction, BigNum reconstruction, FCS verification, and field
// assembly. Kept as a separate step from symbolsToWords and wordsToCodewords
// so bit-flip repair can run each candidate word array through
// wordsToCodewords and then here, without rebuilding words from a symbol
// string.
func codewordsToRecord(cw [bitlayout.NumCodewords]int, fcsBits uint16) (Record, bool) {
	if cw[9]&1 != 0 {
		return Record{}, false
	}
	cw[9] >>= 1
	if cw[0] >= 659 {
		cw[0] -= 659
		fcsBits |= 1 << 10
	}

	n := bignum.New()
	n.SetLimb(8, uint32(cw[0]>>11))
	n.SetLimb(9, uint32(cw[0]&0x7FF))
	for i := 1; i <= 8; i++ {
		n.MulAdd(1365, uint64(cw[i]))
	}
	n.MulAdd(636, uint64(cw[9]))

	if fcs.Calculate(n) != fcsBits {
		return Record{}, false
	}

	return decomposeFields(n)
}

// decomposeFields peels the 20-digit tracking number off the
// least-significant end of n, then recovers the routing fields
// (zip/plus4/delivery_pt) from what's left by comparing the remainder
// against the disjoint ranges the four routing shapes occupy — a clean
// inverse of encode's foldRouting (see DESIGN.md for the derivation).
func decomposeFields(n *bignum.BigNum) (Record, bool) {
	var track [20]uint64
	for j := 19; j >= 2; j-- {
		track[j] = n.DivMod(10)
	}
	track[1] = n.DivMod(5)
	track[0] = n.DivMod(10)

	var r Record
	r.BarcodeID = digitsToString(track[0:2])
	r.ServiceType = digitsToString(track[2:5])
	if track[5] == 9 {
		r.MailerID = digitsToString(track[5:14])
		r.SerialNum = digitsToString(track[14:20])
	} else {
		r.MailerID = digitsToString(track[5:11])
		r.SerialNum = digitsToString(track[11:20])
	}

	routing := n.Uint64()
	switch {
	case routing == 0:
		// No routing information at all (shape None).
	case routing <= routingZipMax:
		r.Zip = fixedWidth(routing-markerZip, 5)
	case routing <= routingPlus4Max:
		rest := routing - markerZip - markerPlus4
		r.Zip = fixedWidth(rest/10000, 5)
		r.Plus4 = fixedWidth(rest%10000, 4)
	default:
		rest := routing - markerZip - markerPlus4 - uint64(markerDeliveryPt)
		r.DeliveryPt = fixedWidth(rest%100, 2)
		rest /= 100
		r.Zip = fixedWidth(rest/10000, 5)
		r.Plus4 = fixedWidth(rest%10000, 4)
	}

	return r, true
}

func digitsToString(digits []uint64) string {
	var sb strings.Builder
	sb.Grow(len(digits))
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	return sb.String()
}

func fixedWidth(v uint64, width int) string {
	s := strconv.FormatUint(v, 10)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
