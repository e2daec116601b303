package imb

import (
	"strconv"

	"github.com/erajkhatiwada/imb/internal/bignum"
	"github.com/erajkhatiwada/imb/internal/bitlayout"
	"github.com/erajkhatiwada/imb/internal/fcs"
	"github.com/erajkhatiwada/imb/internal/tables"
)

const (
	symbolTracker   = 'T'
	symbolAscender  = 'A'
	symbolDescender = 'D'
	symbolFull      = 'F'
)

// Routing shape markers, additive and nested: a Full barcode's marker is the
// sum of all three, since presence of Plus4 implies Zip and presence of
// DeliveryPt implies both.
const (
	markerZip        = 1
	markerPlus4      = 100000
	markerDeliveryPt = 1000000000
)

// Boundaries between the four routing shapes once the marker has been added
// to the zip/plus4/delivery_pt concatenation. The four ranges are disjoint
// and contiguous: {0} is None, (0,100000] is Zip, (100000,1000100000] is
// Zip+4, and everything above is Full. See DESIGN.md for the derivation.
const (
	routingZipMax   = 100000
	routingPlus4Max = 1000100000
)

// Encode builds the 65-symbol Intelligent Mail Barcode string for rec. It
// normalizes and validates rec first; a validation failure is returned
// unwrapped from Encode so callers can errors.As it into a *ValidationError.
func Encode(rec Record) (string, error) {
	r := rec.normalized()
	if err := r.Validate(); err != nil {
		return "", err
	}

	n := bignum.New()
	foldRouting(n, r)
	foldTracking(n, r)

	check := fcs.Calculate(n)
	words := deriveWords(n, check)

	return assembleSymbols(words), nil
}

// foldRouting folds zip/plus4/delivery_pt and the routing shape marker into
// n.
func foldRouting(n *bignum.BigNum, r Record) {
	var marker int64
	if r.Zip != "" {
		n.Add(mustAtoi64(r.Zip))
		marker += markerZip
	}
	if r.Plus4 != "" {
		n.MulAdd(10000, uint64(mustAtoi64(r.Plus4)))
		marker += markerPlus4
	}
	if r.DeliveryPt != "" {
		n.MulAdd(100, uint64(mustAtoi64(r.DeliveryPt)))
		marker += markerDeliveryPt
	}
	n.Add(marker)
}

// foldTracking folds the 20-digit tracking number (barcode ID, service
// type, mailer ID, serial number) into n. Each multi-digit muladd is
// equivalent to folding the same number of digits one
// at a time, since n*10^k + v == (((n*10+v_0)*10+v_1)*10+...)*10+v_{k-1} for
// v's decimal digits v_0..v_{k-1}; decode's digit-at-a-time divmod(10) loop
// is the exact inverse regardless of how encode groups the folds.
func foldTracking(n *bignum.BigNum, r Record) {
	n.MulAdd(10, uint64(r.BarcodeID[0]-'0'))
	n.MulAdd(5, uint64(r.BarcodeID[1]-'0'))
	n.MulAdd(1000, uint64(mustAtoi64(r.ServiceType)))

	if len(r.MailerID) == 9 {
		n.MulAdd(1000000000, uint64(mustAtoi64(r.MailerID)))
		n.MulAdd(1000000, uint64(mustAtoi64(r.SerialNum)))
	} else {
		n.MulAdd(1000000, uint64(mustAtoi64(r.MailerID)))
		n.MulAdd(1000000000, uint64(mustAtoi64(r.SerialNum)))
	}
}

// deriveWords splits n into ten codewords and maps each to its 13-bit
// binary word, complementing per FCS bit.
func deriveWords(n *bignum.BigNum, check uint16) [bitlayout.NumCodewords]uint16 {
	t := tables.Get()

	var cw [bitlayout.NumCodewords]int
	cw[9] = int(n.DivMod(636)) << 1
	for i := 8; i >= 1; i-- {
		cw[i] = int(n.DivMod(1365))
	}
	cw[0] = int((n.Limb(8) << 11) | n.Limb(9))
	if check&(1<<10) != 0 {
		cw[0] += 659
	}

	var words [bitlayout.NumCodewords]uint16
	for i := 0; i < bitlayout.NumCodewords; i++ {
		w := t.Encode[cw[i]]
		if check&(1<<uint(i)) != 0 {
			w ^= 0x1FFF
		}
		words[i] = w
	}
	return words
}

// assembleSymbols maps the ten 13-bit codewords onto the 65 symbol
// positions via the fixed bit layout.
func assembleSymbols(words [bitlayout.NumCodewords]uint16) string {
	buf := make([]byte, bitlayout.NumPositions)
	for p := 0; p < bitlayout.NumPositions; p++ {
		desc := bitAt(words, bitlayout.DescCodeword(p), bitlayout.DescBit(p))
		asc := bitAt(words, bitlayout.AscCodeword(p), bitlayout.AscBit(p))
		switch {
		case asc && desc:
			buf[p] = symbolFull
		case asc:
			buf[p] = symbolAscender
		case desc:
			buf[p] = symbolDescender
		default:
			buf[p] = symbolTracker
		}
	}
	return string(buf)
}

func bitAt(words [bitlayout.NumCodewords]uint16, codeword, bit int) bool {
	return (words[codeword]>>uint(bit))&1 != 0
}

func mustAtoi64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Validate already guaranteed s is all-digit and within a bounded
		// width; a parse failure here would mean Validate has a bug.
		panic("imb: invalid digit string reached encode: " + s)
	}
	return v
}
