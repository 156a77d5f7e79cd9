// Package validator holds the pure accept/reject rules for contact fields.
//
// Each check takes a raw value and either returns the accepted value or a
// *domain.ValidationError naming the first rule that failed. Phone and email
// uniqueness is evaluated against a read-only Lookup; the checks never write.
package validator

import (
	"strings"

	"github.com/bft-labs/contactbook/internal/domain"
)

// PhoneLength is the exact number of digits in a phone number.
const PhoneLength = 10

// MinLocalPart is the minimum number of characters before '@' in an email.
const MinLocalPart = 5

// Lookup is a read-only view of the contacts a value must be unique against.
type Lookup interface {
	HasPhone(phone string) bool
	HasEmail(email string) bool
}

// Field dispatches raw to the check for f.
func Field(f domain.Field, raw string, l Lookup) (string, error) {
	switch f {
	case domain.FieldName:
		return Name(raw)
	case domain.FieldPhone:
		return Phone(raw, l)
	case domain.FieldEmail:
		return Email(raw, l)
	default:
		return "", domain.NewValidationError(f, domain.ReasonInvalidChar, raw)
	}
}

// Contact runs all three checks on c in name, phone, email order.
func Contact(c domain.Contact, l Lookup) (domain.Contact, error) {
	name, err := Name(c.Name)
	if err != nil {
		return domain.Contact{}, err
	}
	phone, err := Phone(c.Phone, l)
	if err != nil {
		return domain.Contact{}, err
	}
	email, err := Email(c.Email, l)
	if err != nil {
		return domain.Contact{}, err
	}
	return domain.Contact{Name: name, Phone: phone, Email: email}, nil
}

// Name accepts non-empty ASCII letters and spaces starting with a letter.
// Names need not be unique.
func Name(raw string) (string, error) {
	reject := func(r domain.Reason) (string, error) {
		return "", domain.NewValidationError(domain.FieldName, r, raw)
	}

	if raw == "" {
		return reject(domain.ReasonEmptyInput)
	}
	if !isAlpha(raw[0]) {
		return reject(domain.ReasonInvalidFirstChar)
	}
	for i := 0; i < len(raw); i++ {
		if !isAlpha(raw[i]) && raw[i] != ' ' {
			return reject(domain.ReasonInvalidChar)
		}
	}
	return raw, nil
}

// Phone accepts exactly ten ASCII digits not already held by l.
func Phone(raw string, l Lookup) (string, error) {
	reject := func(r domain.Reason) (string, error) {
		return "", domain.NewValidationError(domain.FieldPhone, r, raw)
	}

	if len(raw) != PhoneLength {
		return reject(domain.ReasonWrongLength)
	}
	for i := 0; i < len(raw); i++ {
		if !isDigit(raw[i]) {
			return reject(domain.ReasonNonDigit)
		}
	}
	if l != nil && l.HasPhone(raw) {
		return reject(domain.ReasonDuplicate)
	}
	return raw, nil
}

// Email applies the address rules in a fixed order and reports the first
// one that fails, followed by uniqueness against l.
func Email(raw string, l Lookup) (string, error) {
	reject := func(r domain.Reason) (string, error) {
		return "", domain.NewValidationError(domain.FieldEmail, r, raw)
	}

	if strings.Count(raw, "@") != 1 {
		return reject(domain.ReasonNotExactlyOneAt)
	}
	at := strings.IndexByte(raw, '@')
	local, host := raw[:at], raw[at+1:]

	if len(local) < MinLocalPart {
		return reject(domain.ReasonLocalPartTooShort)
	}
	if !isLower(raw[0]) {
		return reject(domain.ReasonFirstCharNotLowercase)
	}
	for i := 0; i < len(local); i++ {
		if !isLower(local[i]) && !isDigit(local[i]) {
			return reject(domain.ReasonInvalidLocalChar)
		}
	}

	hasLetter, hasDot := false, false
	for i := 0; i < len(host); i++ {
		c := host[i]
		if !isAlpha(c) && !isDigit(c) && c != '.' && c != '-' {
			return reject(domain.ReasonInvalidDomainChar)
		}
		hasLetter = hasLetter || isAlpha(c)
		hasDot = hasDot || c == '.'
	}
	if !hasLetter {
		return reject(domain.ReasonDomainMissingLetter)
	}
	if !hasDot {
		return reject(domain.ReasonDomainMissingDot)
	}

	if l != nil && l.HasEmail(raw) {
		return reject(domain.ReasonDuplicate)
	}
	return raw, nil
}

func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
