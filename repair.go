package imb

import (
	"github.com/erajkhatiwada/imb/bitutil"
	"github.com/erajkhatiwada/imb/internal/bitlayout"
	"github.com/erajkhatiwada/imb/internal/tables"
)

const (
	// maxCartesian bounds the bit-flip repair search: it
	// separates "one symbol slightly wrong" from "too damaged to recover".
	maxCartesian = 1000

	// maxInvalidCodewords is the ceiling a length-repair candidate's invalid
	// codeword count must clear to be considered at all.
	maxInvalidCodewords = 5
)

// repairFrom65 is reached when a 65-symbol, alphabet-valid string failed
// strict decode. It tries bit-flip repair, then orientation detection.
func repairFrom65(s string) (DecodeResult, error) {
	rec, suggest, positions, outcome := bitFlipRepair(s)
	switch outcome {
	case repairUnique:
		return DecodeResult{
			Record: rec,
			Repair: RepairStatus{Repaired: true, Suggest: suggest, Positions: positions},
		}, nil
	case repairAmbiguous:
		return DecodeResult{}, decodingErr(ReasonInvalidBarcode)
	}

	if isUpsideDown(s) {
		return DecodeResult{}, decodingErr(ReasonUpsideDown)
	}
	return DecodeResult{}, decodingErr(ReasonInvalidBarcode)
}

type repairOutcome int

const (
	repairFailed repairOutcome = iota
	repairUnique
	repairAmbiguous
)

// bitFlipRepair enumerates per-codeword bit-flip repairs: for each
// codeword, enumerate plausible 13-bit words (the word itself if already
// valid, else its valid single-bit neighbors), then search the Cartesian
// product for decodes that pass the full pipeline.
func bitFlipRepair(s string) (Record, string, *bitutil.BitArray, repairOutcome) {
	words := symbolsToWords(s)
	t := tables.Get()

	var plausible [bitlayout.NumCodewords][]uint16
	total := 1
	for i := 0; i < bitlayout.NumCodewords; i++ {
		plausible[i] = plausibleWords(t, words[i])
		if len(plausible[i]) == 0 {
			return Record{}, "", nil, repairFailed
		}
		total *= len(plausible[i])
		if total > maxCartesian {
			return Record{}, "", nil, repairFailed
		}
	}

	var (
		found     Record
		foundWords [bitlayout.NumCodewords]uint16
		successes int
	)

	var candidate [bitlayout.NumCodewords]uint16
	var walk func(i int)
	walk = func(i int) {
		if successes > 1 {
			return
		}
		if i == bitlayout.NumCodewords {
			cw, fcsBits, ok := wordsToCodewords(candidate)
			if !ok {
				return
			}
			rec, ok := codewordsToRecord(cw, fcsBits)
			if !ok {
				return
			}
			successes++
			if successes == 1 {
				found = rec
				foundWords = candidate
			}
			return
		}
		for _, w := range plausible[i] {
			candidate[i] = w
			walk(i + 1)
			if successes > 1 {
				return
			}
		}
	}
	walk(0)

	switch successes {
	case 0:
		return Record{}, "", nil, repairFailed
	case 1:
		suggest := assembleSymbols(foundWords)
		positions := bitutil.NewBitArray(bitlayout.NumPositions)
		for p := 0; p < bitlayout.NumPositions; p++ {
			if s[p] != suggest[p] {
				positions.Set(p)
			}
		}
		return found, suggest, positions, repairUnique
	default:
		return Record{}, "", nil, repairAmbiguous
	}
}

// plausibleWords returns word itself if it already maps to a valid
// codeword, otherwise every single-bit neighbor of word that does.
func plausibleWords(t *tables.Tables, word uint16) []uint16 {
	if t.Decode[word] >= 0 {
		return []uint16{word}
	}
	var out []uint16
	for b := 0; b < bitlayout.BitsPerCodeword; b++ {
		candidate := word ^ (1 << uint(b))
		if t.Decode[candidate] >= 0 {
			out = append(out, candidate)
		}
	}
	return out
}

// isUpsideDown reports whether s decodes cleanly after swapping every A and
// D symbol (T and F are orientation-invariant). Used only as a diagnostic
// after every repair attempt has failed; the flipped payload is never
// returned as data.
func isUpsideDown(s string) bool {
	flipped := []byte(s)
	for i, c := range flipped {
		switch c {
		case symbolAscender:
			flipped[i] = symbolDescender
		case symbolDescender:
			flipped[i] = symbolAscender
		}
	}
	_, ok := tryDecode(string(flipped))
	return ok
}

// lengthRepair handles a 64- or 66-symbol input: it builds every
// single-insertion or single-deletion candidate, scores each by its count of
// invalid codeword lookups, and continues bit-flip repair on the
// best-scoring candidate if it clears the ceiling.
func lengthRepair(s string) (DecodeResult, error) {
	candidates := lengthCandidates(s)

	bestIdx := -1
	bestInvalid := maxInvalidCodewords
	for i, c := range candidates {
		n := invalidCodewordCount(c)
		if n < bestInvalid {
			bestInvalid = n
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return DecodeResult{}, decodingErr(ReasonInvalidBarcode)
	}

	best := candidates[bestIdx]
	if rec, ok := tryDecode(best); ok {
		return DecodeResult{Record: rec, Repair: RepairStatus{Repaired: true, Suggest: best}}, nil
	}
	return repairFrom65(best)
}

func lengthCandidates(s string) []string {
	var out []string
	switch len(s) {
	case bitlayout.NumPositions - 1:
		for p := 0; p <= len(s); p++ {
			out = append(out, s[:p]+string(rune(symbolTracker))+s[p:])
		}
	case bitlayout.NumPositions + 1:
		for p := 0; p < len(s); p++ {
			out = append(out, s[:p]+s[p+1:])
		}
	}
	return out
}

func invalidCodewordCount(s string) int {
	words := symbolsToWords(s)
	t := tables.Get()
	n := 0
	for _, w := range words {
		if t.Decode[w] < 0 {
			n++
		}
	}
	return n
}
