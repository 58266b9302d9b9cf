// Package postcode validates and canonicalizes UK postcodes. All functions
// are pure and deterministic; callers decide how rejection reasons surface
// to the end user.
package postcode

import (
	"errors"
	"regexp"
	"strings"
)

// Postcode is a canonical uppercase postcode with a single space between the
// outward and inward codes, e.g. "ZZ1 1ZZ". Only Normalize produces values.
type Postcode string

// Outcode is the outward code alone (area + district), e.g. "BF1". Used for
// specialized lookups such as BFPO addresses.
type Outcode string

var (
	// ErrEmpty rejects input that is blank once whitespace is stripped.
	ErrEmpty = errors.New("postcode is empty")
	// ErrInvalidCharacters rejects input containing anything other than
	// letters and digits once whitespace is stripped.
	ErrInvalidCharacters = errors.New("postcode contains invalid characters")
	// ErrMalformed rejects alphanumeric input that does not match the
	// canonical outward + inward pattern.
	ErrMalformed = errors.New("postcode is malformed")
)

var (
	alphanumeric = regexp.MustCompile(`^[0-9A-Z]+$`)
	fullPattern  = regexp.MustCompile(`^([A-Z]{1,2}[0-9][0-9A-Z]?)([0-9][A-Z]{2})$`)
	outPattern   = regexp.MustCompile(`^[A-Z]{1,2}[0-9][0-9A-Z]?$`)
)

// Normalize cleans raw postcode text into canonical form. Whitespace is
// stripped wherever it appears, letters are upcased, and the result is
// rendered as "OUT IN". Normalize is idempotent over its own output.
func Normalize(raw string) (Postcode, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if cleaned == "" {
		return "", ErrEmpty
	}
	if !alphanumeric.MatchString(cleaned) {
		return "", ErrInvalidCharacters
	}
	m := fullPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return "", ErrMalformed
	}
	return Postcode(m[1] + " " + m[2]), nil
}

// ParseOutcode cleans raw text into an outward code. BFPO lookups query the
// provider with an outcode and a building number instead of a full postcode.
func ParseOutcode(raw string) (Outcode, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if cleaned == "" {
		return "", ErrEmpty
	}
	if !alphanumeric.MatchString(cleaned) {
		return "", ErrInvalidCharacters
	}
	if !outPattern.MatchString(cleaned) {
		return "", ErrMalformed
	}
	return Outcode(cleaned), nil
}

// String returns the canonical form.
func (p Postcode) String() string { return string(p) }

// Outcode returns the outward code of a canonical postcode.
func (p Postcode) Outcode() Outcode {
	out, _, _ := strings.Cut(string(p), " ")
	return Outcode(out)
}

func (o Outcode) String() string { return string(o) }
