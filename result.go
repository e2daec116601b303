package imb

import "github.com/erajkhatiwada/imb/bitutil"

// DecodeResult is what Decode returns on success: the recovered Record plus
// a report of how clean the input was.
type DecodeResult struct {
	Record Record
	Repair RepairStatus
}

// RepairStatus reports whether a decode succeeded on the input as given or
// only after repairing it.
type RepairStatus struct {
	// Repaired is false when the input decoded without any correction.
	Repaired bool

	// Suggest holds the repaired 65-symbol string when Repaired is true.
	Suggest string

	// Positions marks, when Repaired is true and the repair was a bit-flip
	// repair, which symbol positions were changed. It is nil for a clean
	// decode or a length repair.
	Positions *bitutil.BitArray
}
