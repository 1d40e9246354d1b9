// Package idnum derives a date of birth from a 13-digit national identity number.
// The first six digits encode YYMMDD; the century is disambiguated against the
// current two-digit year (greater means 1900s, otherwise 2000s).
package idnum

import (
	"errors"
	"time"
)

// Length is the required number of digits in a national identity number.
const Length = 13

var (
	ErrMalformed   = errors.New("id number must be exactly 13 digits")
	ErrInvalidDate = errors.New("id number does not encode a valid calendar date")
)

// WellFormed reports whether idNumber is exactly 13 numeric digits.
func WellFormed(idNumber string) bool {
	if len(idNumber) != Length {
		return false
	}
	for _, r := range idNumber {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DeriveDateOfBirth extracts the date of birth encoded in idNumber. The now
// argument anchors the century rule so the computation stays deterministic in
// tests.
func DeriveDateOfBirth(idNumber string, now time.Time) (time.Time, error) {
	if !WellFormed(idNumber) {
		return time.Time{}, ErrMalformed
	}

	yy := int(idNumber[0]-'0')*10 + int(idNumber[1]-'0')
	mm := int(idNumber[2]-'0')*10 + int(idNumber[3]-'0')
	dd := int(idNumber[4]-'0')*10 + int(idNumber[5]-'0')

	year := 2000 + yy
	if yy > now.Year()%100 {
		year = 1900 + yy
	}

	// time.Date normalizes out-of-range components, so compare back to catch
	// dates like February 30th.
	dob := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if dob.Year() != year || dob.Month() != time.Month(mm) || dob.Day() != dd {
		return time.Time{}, ErrInvalidDate
	}

	return dob, nil
}
