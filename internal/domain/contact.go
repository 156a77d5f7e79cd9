package domain

import "fmt"

// Contact is one directory entry.
type Contact struct {
	// Name contains ASCII letters and spaces and starts with a letter.
	Name string

	// Phone is exactly ten ASCII digits, unique within a store.
	Phone string

	// Email holds exactly one '@' and is unique within a store.
	Email string
}

// Get returns the value of field f.
func (c Contact) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldPhone:
		return c.Phone
	case FieldEmail:
		return c.Email
	default:
		return ""
	}
}

// With returns a copy of c with field f replaced by value.
func (c Contact) With(f Field, value string) Contact {
	switch f {
	case FieldName:
		c.Name = value
	case FieldPhone:
		c.Phone = value
	case FieldEmail:
		c.Email = value
	}
	return c
}

// String renders the contact in its persisted line form.
func (c Contact) String() string {
	return fmt.Sprintf("%s,%s,%s", c.Name, c.Phone, c.Email)
}

// Field identifies one of the contact fields.
type Field int

const (
	FieldName Field = iota
	FieldPhone
	FieldEmail
)

// String returns the lowercase field name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPhone:
		return "phone"
	case FieldEmail:
		return "email"
	default:
		return "unknown"
	}
}
