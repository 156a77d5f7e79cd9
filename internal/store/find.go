package store

import (
	"fmt"

	"github.com/bft-labs/contactbook/internal/domain"
)

// Matches holds the positions of contacts found by name, in store order.
type Matches []int

// Single returns the only match, or false when there are zero or several.
func (m Matches) Single() (int, bool) {
	if len(m) != 1 {
		return -1, false
	}
	return m[0], true
}

// Pick resolves a 1-based choice among several matches to a store position.
func (m Matches) Pick(choice int) (int, error) {
	if choice < 1 || choice > len(m) {
		return -1, fmt.Errorf("choice %d of %d: %w", choice, len(m), domain.ErrInvalidSelection)
	}
	return m[choice-1], nil
}

// FindByName returns every position whose name equals query ignoring ASCII
// case. No match yields ErrNotFound.
func (s *Store) FindByName(query string) (Matches, error) {
	var m Matches
	for i, c := range s.contacts {
		if EqualNames(c.Name, query) {
			m = append(m, i)
		}
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("name %q: %w", query, domain.ErrNotFound)
	}
	return m, nil
}

// FindByPhone returns the position holding exactly phone.
func (s *Store) FindByPhone(phone string) (int, error) {
	if i := s.indexOf(domain.FieldPhone, phone, -1); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("phone %q: %w", phone, domain.ErrNotFound)
}

// FindByEmail returns the position holding exactly email.
func (s *Store) FindByEmail(email string) (int, error) {
	if i := s.indexOf(domain.FieldEmail, email, -1); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("email %q: %w", email, domain.ErrNotFound)
}

// Find dispatches to the lookup for f. Name lookups that match more than one
// contact return ErrInvalidSelection; use FindByName to choose among them.
func (s *Store) Find(f domain.Field, query string) (int, error) {
	switch f {
	case domain.FieldPhone:
		return s.FindByPhone(query)
	case domain.FieldEmail:
		return s.FindByEmail(query)
	}
	m, err := s.FindByName(query)
	if err != nil {
		return -1, err
	}
	if i, ok := m.Single(); ok {
		return i, nil
	}
	return -1, fmt.Errorf("name %q matches %d contacts: %w", query, len(m), domain.ErrInvalidSelection)
}

// HasPhone reports whether any contact holds phone.
func (s *Store) HasPhone(phone string) bool { return s.indexOf(domain.FieldPhone, phone, -1) >= 0 }

// HasEmail reports whether any contact holds email.
func (s *Store) HasEmail(email string) bool { return s.indexOf(domain.FieldEmail, email, -1) >= 0 }

// Except returns a uniqueness view of the store that ignores position skip.
func (s *Store) Except(skip int) View {
	return View{s: s, skip: skip}
}

// View answers uniqueness questions over a store while ignoring one position.
type View struct {
	s    *Store
	skip int
}

// HasPhone reports whether any other contact holds phone.
func (v View) HasPhone(phone string) bool { return v.s.indexOf(domain.FieldPhone, phone, v.skip) >= 0 }

// HasEmail reports whether any other contact holds email.
func (v View) HasEmail(email string) bool { return v.s.indexOf(domain.FieldEmail, email, v.skip) >= 0 }

func (s *Store) indexOf(f domain.Field, value string, skip int) int {
	for i, c := range s.contacts {
		if i != skip && c.Get(f) == value {
			return i
		}
	}
	return -1
}
