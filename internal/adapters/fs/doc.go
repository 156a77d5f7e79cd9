// Package fs contains file-system adapters for contactbook.
package fs
