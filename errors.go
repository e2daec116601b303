// Package imb implements a bidirectional codec for the USPS Intelligent Mail
// Barcode: it turns a structured postal record into a 65-symbol string drawn
// from {A, D, F, T} and recovers the record from any correctly formed
// string, with limited recovery from single-symbol damage.
package imb

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel every encode-time validation failure wraps.
// Callers can test for it with errors.Is.
var ErrValidation = errors.New("validation error")

// ErrDecoding is the sentinel every decode failure wraps.
var ErrDecoding = errors.New("decoding error")

// Fixed validation failure reasons.
const (
	ReasonZipDigits                  = "zip must be 5 digits"
	ReasonZipRequiredForPlus4        = "zip required when plus4 present"
	ReasonPlus4Digits                = "plus4 must be 4 digits"
	ReasonDeliveryPtDigits           = "delivery_pt must be 2 digits"
	ReasonPlus4RequiredForDeliveryPt = "plus4 required when delivery_pt present"
	ReasonBarcodeIDDigits            = "barcode_id must be 2 digits"
	ReasonBarcodeIDSecondDigit       = "second digit of barcode_id must be 0-4"
	ReasonServiceTypeDigits          = "service_type must be 3 digits"
	ReasonMailerIDDigits             = "mailer_id must be 6 or 9 digits"
	ReasonMailerSerialTotal          = "mailer_id + serial_num must total 15 digits"
)

// Fixed decoding failure reasons.
const (
	ReasonLength         = "length != 65"
	ReasonInvalidSymbol  = "invalid symbol"
	ReasonUpsideDown     = "upside down"
	ReasonInvalidBarcode = "invalid barcode"
)

// ValidationError reports why a Record failed encode-time validation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Unwrap lets callers match this error with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}

// DecodingError reports why a symbol string could not be decoded, possibly
// after exhausting recovery.
type DecodingError struct {
	Reason string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("imb: decoding failed: %s", e.Reason)
}

// Unwrap lets callers match this error with errors.Is(err, ErrDecoding).
func (e *DecodingError) Unwrap() error {
	return ErrDecoding
}

func decodingErr(reason string) error {
	return &DecodingError{Reason: reason}
}
