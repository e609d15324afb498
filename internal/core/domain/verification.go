package domain

import (
	"errors"
	"regexp"
)

var ErrInvalidPAN = errors.New("invalid pan number format")
var ErrInvalidAadhaar = errors.New("invalid aadhaar number format")
var ErrNotVerified = errors.New("verification required")

var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

// ValidPAN reports whether number matches the PAN card format (AAAAA9999A).
func ValidPAN(number string) bool {
	return panPattern.MatchString(number)
}

// ValidAadhaar reports whether number is a 12-digit Aadhaar number.
func ValidAadhaar(number string) bool {
	return aadhaarPattern.MatchString(number)
}
