package store

import (
	"slices"

	"github.com/bft-labs/contactbook/internal/domain"
)

// SortByName orders the store by name, ignoring ASCII case.
// Contacts whose names compare equal keep their relative order.
func (s *Store) SortByName() {
	slices.SortStableFunc(s.contacts, func(a, b domain.Contact) int {
		return CompareNames(a.Name, b.Name)
	})
}

// CompareNames compares a and b byte by byte after ASCII case folding.
// When one is a prefix of the other the shorter sorts first.
func CompareNames(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := fold(a[i]), fold(b[i])
		if ca != cb {
			return int(ca) - int(cb)
		}
	}
	return len(a) - len(b)
}

// EqualNames reports whether a and b are equal ignoring ASCII case.
func EqualNames(a, b string) bool {
	return len(a) == len(b) && CompareNames(a, b) == 0
}

func fold(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
