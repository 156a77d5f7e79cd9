// Package domain contains the core entities and error taxonomy for contactbook.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (file system, terminal, logging) and contains only
// the record shape and the conditions the rest of the program reports.
//
// # Entities
//
//   - [Contact]: one directory entry (name, phone, email)
//   - [Field]: selects one of the three contact fields
//   - [Reason]: why a field value was rejected
//
// # Errors
//
// Sentinel errors are compared with errors.Is. Field rejections are reported
// as *[ValidationError], which matches [ErrValidation] and carries the
// [Reason] a caller needs to choose a re-prompt message.
package domain
