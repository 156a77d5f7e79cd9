// Package store implements the bounded, ordered in-memory contact collection.
//
// A Store is owned by a single session and is not safe for concurrent use.
// It does not validate values; callers run them through the validator package
// first, using the Store itself (or Except) as the uniqueness view.
package store

import (
	"fmt"
	"slices"

	"github.com/bft-labs/contactbook/internal/domain"
)

// DefaultCapacity is the maximum number of contacts held by default.
const DefaultCapacity = 100

// Store is an ordered sequence of contacts with an upper bound on its length.
type Store struct {
	capacity int
	contacts []domain.Contact
}

// New creates an empty store holding at most capacity contacts.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		contacts: make([]domain.Contact, 0, capacity),
	}
}

// Len returns the number of live contacts.
func (s *Store) Len() int { return len(s.contacts) }

// Cap returns the configured bound.
func (s *Store) Cap() int { return s.capacity }

// Remaining returns how many more contacts fit.
func (s *Store) Remaining() int { return s.capacity - len(s.contacts) }

// All returns a copy of the contacts in store order.
func (s *Store) All() []domain.Contact {
	return slices.Clone(s.contacts)
}

// At returns the contact at position i.
func (s *Store) At(i int) (domain.Contact, error) {
	if err := s.checkIndex(i); err != nil {
		return domain.Contact{}, err
	}
	return s.contacts[i], nil
}

// Add appends c. It does not sort.
func (s *Store) Add(c domain.Contact) error {
	if len(s.contacts) >= s.capacity {
		return fmt.Errorf("add %q: %w (max %d)", c.Name, domain.ErrCapacityExceeded, s.capacity)
	}
	s.contacts = append(s.contacts, c)
	return nil
}

// Reserve reports whether n more contacts fit, without adding anything.
func (s *Store) Reserve(n int) error {
	if n < 0 || len(s.contacts)+n > s.capacity {
		return fmt.Errorf("reserve %d: %w (max %d, have %d)", n, domain.ErrCapacityExceeded, s.capacity, len(s.contacts))
	}
	return nil
}

// UpdateField replaces one field of the contact at position i.
func (s *Store) UpdateField(i int, f domain.Field, value string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.contacts[i] = s.contacts[i].With(f, value)
	return nil
}

// RemoveAt deletes the contact at position i, shifting later entries left.
// An invalid index leaves the store untouched.
func (s *Store) RemoveAt(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.contacts = slices.Delete(s.contacts, i, i+1)
	return nil
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.contacts) {
		return fmt.Errorf("position %d of %d: %w", i, len(s.contacts), domain.ErrIndexOutOfRange)
	}
	return nil
}
