package domain

import "github.com/nyaruka/phonenumbers"

// DefaultPhoneRegion is the region used to parse phone numbers that carry no
// country prefix.
const DefaultPhoneRegion = "VE"

// FormatPhoneNumber normalizes raw into international form for the default
// region. It returns "" when raw cannot be parsed as a valid number; callers
// must fall back to the raw input rather than store an empty phone number.
func FormatPhoneNumber(raw string) string {
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
