package dataset

import "strings"

// NationalStateCode identifies the national-total rows.
const NationalStateCode = "US-Total"

// StateRules maps upper-cased raw state labels to canonical labels.
// Labels mapping to NationalStateCode are national aggregates.
var StateRules = map[string]string{
	"US-TOTAL": NationalStateCode,
	// The feed uses WA for the federal district.
	"WA": "DC",
}

// StateCodes are the 51 jurisdictions. WA is listed for completeness but is
// never produced: the WA rule runs first.
var StateCodes = []string{
	"AK", "AL", "AR", "AZ", "CA", "CO", "CT", "DC", "DE", "FL",
	"GA", "HI", "IA", "ID", "IL", "IN", "KS", "KY", "LA", "MA",
	"MD", "ME", "MI", "MN", "MO", "MS", "MT", "NC", "ND", "NE",
	"NH", "NJ", "NM", "NV", "NY", "OH", "OK", "OR", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VA", "VT", "WA", "WI", "WV",
	"WY",
}

var stateCodeSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(StateCodes))
	for _, code := range StateCodes {
		set[code] = struct{}{}
	}
	return set
}()

// IsNationalAggregate reports whether a raw label denotes the national total.
func IsNationalAggregate(label string) bool {
	return StateRules[strings.ToUpper(strings.TrimSpace(label))] == NationalStateCode
}

// IsStateCode reports whether code is one of the 51 jurisdictions.
func IsStateCode(code string) bool {
	_, ok := stateCodeSet[code]
	return ok
}

// HarmonizeState resolves a raw label. national is true for the national aggregate;
// ok is false when the label is blank or not a known jurisdiction.
func HarmonizeState(raw string) (code string, national bool, ok bool) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	if label == "" {
		return "", false, false
	}
	if mapped, found := StateRules[label]; found {
		label = mapped
	}
	if label == NationalStateCode {
		return NationalStateCode, true, true
	}
	if !IsStateCode(label) {
		return "", false, false
	}
	return label, false, true
}
