package imb

import "strings"

// Record is the structured postal data an Intelligent Mail Barcode encodes.
// Zip, Plus4, and DeliveryPt are optional; an empty string means absent. All
// other fields are required.
type Record struct {
	// BarcodeID is 2 decimal digits; the second digit must be 0-4.
	BarcodeID string

	// ServiceType is 3 decimal digits.
	ServiceType string

	// MailerID is 6 or 9 decimal digits. A 9-digit mailer ID always begins
	// with the digit 9 in this system; that leading digit is how decode
	// tells the two lengths apart.
	MailerID string

	// SerialNum is the remainder of the 15-digit tracking number: 9 digits
	// when MailerID is 6 digits, 6 digits when MailerID is 9 digits.
	SerialNum string

	// Zip, if present, is 5 decimal digits.
	Zip string

	// Plus4, if present, is 4 decimal digits. Requires Zip to be present.
	Plus4 string

	// DeliveryPt, if present, is 2 decimal digits.
	DeliveryPt string
}

// normalized returns r with every field stripped of surrounding whitespace
// and upper-cased, matching the input normalization the codec applies
// before validating or encoding.
func (r Record) normalized() Record {
	return Record{
		BarcodeID:   normalizeField(r.BarcodeID),
		ServiceType: normalizeField(r.ServiceType),
		MailerID:    normalizeField(r.MailerID),
		SerialNum:   normalizeField(r.SerialNum),
		Zip:         normalizeField(r.Zip),
		Plus4:       normalizeField(r.Plus4),
		DeliveryPt:  normalizeField(r.DeliveryPt),
	}
}

func normalizeField(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate checks r against the fixed shape and digit constraints,
// returning the first violation found as a *ValidationError. It does not
// normalize r first; callers encoding a Record get normalization for free
// through Encode.
func (r Record) Validate() error {
	if !isDigits(r.BarcodeID) || len(r.BarcodeID) != 2 {
		return validationErr(ReasonBarcodeIDDigits)
	}
	if r.BarcodeID[1] > '4' {
		return validationErr(ReasonBarcodeIDSecondDigit)
	}
	if !isDigits(r.ServiceType) || len(r.ServiceType) != 3 {
		return validationErr(ReasonServiceTypeDigits)
	}
	if !isDigits(r.MailerID) || (len(r.MailerID) != 6 && len(r.MailerID) != 9) {
		return validationErr(ReasonMailerIDDigits)
	}
	// Decode tells 6- and 9-digit mailer IDs apart by the sixth tracking
	// digit being 9; that digit is MailerID's own
	// first digit in either layout, so a 9-digit MailerID must start with
	// 9 and a 6-digit one must not.
	if len(r.MailerID) == 9 && r.MailerID[0] != '9' {
		return validationErr(ReasonMailerIDDigits)
	}
	if len(r.MailerID) == 6 && r.MailerID[0] == '9' {
		return validationErr(ReasonMailerIDDigits)
	}
	if !isDigits(r.SerialNum) || len(r.MailerID)+len(r.SerialNum) != 15 {
		return validationErr(ReasonMailerSerialTotal)
	}
	if r.Zip != "" && (!isDigits(r.Zip) || len(r.Zip) != 5) {
		return validationErr(ReasonZipDigits)
	}
	if r.Plus4 != "" {
		if r.Zip == "" {
			return validationErr(ReasonZipRequiredForPlus4)
		}
		if !isDigits(r.Plus4) || len(r.Plus4) != 4 {
			return validationErr(ReasonPlus4Digits)
		}
	}
	if r.DeliveryPt != "" {
		if r.Plus4 == "" {
			return validationErr(ReasonPlus4RequiredForDeliveryPt)
		}
		if !isDigits(r.DeliveryPt) || len(r.DeliveryPt) != 2 {
			return validationErr(ReasonDeliveryPtDigits)
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
