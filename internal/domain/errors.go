package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the recoverable and fatal conditions of a session.
// They can be checked with errors.Is.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("contactbook: invalid value")

	// ErrNotFound is returned when a search yields no match.
	ErrNotFound = errors.New("contactbook: contact not found")

	// ErrInvalidSelection is returned for an out-of-range pick among multiple matches.
	ErrInvalidSelection = errors.New("contactbook: invalid selection")

	// ErrCapacityExceeded is returned when a write would grow the store past its bound.
	ErrCapacityExceeded = errors.New("contactbook: capacity exceeded")

	// ErrIndexOutOfRange is returned when a caller passes a position the store does not hold.
	ErrIndexOutOfRange = errors.New("contactbook: index out of range")

	// ErrMalformedRecord is returned when the data file cannot be parsed.
	ErrMalformedRecord = errors.New("contactbook: malformed record")

	// ErrDataFileMissing is returned when the data file cannot be opened at startup.
	ErrDataFileMissing = errors.New("contactbook: data file cannot be opened")
)

// Reason names the rule a field value failed.
type Reason int

const (
	ReasonEmptyInput Reason = iota + 1
	ReasonInvalidFirstChar
	ReasonInvalidChar
	ReasonWrongLength
	ReasonNonDigit
	ReasonDuplicate
	ReasonNotExactlyOneAt
	ReasonLocalPartTooShort
	ReasonFirstCharNotLowercase
	ReasonInvalidLocalChar
	ReasonInvalidDomainChar
	ReasonDomainMissingLetter
	ReasonDomainMissingDot
)

var reasonNames = map[Reason]string{
	ReasonEmptyInput:            "EmptyInput",
	ReasonInvalidFirstChar:      "InvalidFirstChar",
	ReasonInvalidChar:           "InvalidChar",
	ReasonWrongLength:           "WrongLength",
	ReasonNonDigit:              "NonDigit",
	ReasonDuplicate:             "Duplicate",
	ReasonNotExactlyOneAt:       "NotExactlyOneAt",
	ReasonLocalPartTooShort:     "LocalPartTooShort",
	ReasonFirstCharNotLowercase: "FirstCharNotLowercase",
	ReasonInvalidLocalChar:      "InvalidLocalChar",
	ReasonInvalidDomainChar:     "InvalidDomainChar",
	ReasonDomainMissingLetter:   "DomainMissingLetter",
	ReasonDomainMissingDot:      "DomainMissingDot",
}

// String returns the reason code name.
func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// ValidationError reports which field was rejected and why.
type ValidationError struct {
	Field  Field
	Reason Reason
	Value  string
}

// NewValidationError builds a *ValidationError for field f.
func NewValidationError(f Field, r Reason, value string) *ValidationError {
	return &ValidationError{Field: f, Reason: r, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contactbook: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReasonOf extracts the rejection reason from err.
// It returns false when err does not wrap a *ValidationError.
func ReasonOf(err error) (Reason, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return 0, false
}
