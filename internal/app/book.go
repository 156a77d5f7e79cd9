// Package app wires the contact store, the field validator and the
// persistence port into the operations a session performs.
package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/contactbook/internal/domain"
	"github.com/bft-labs/contactbook/internal/ports"
	"github.com/bft-labs/contactbook/internal/store"
	"github.com/bft-labs/contactbook/internal/validator"
	"github.com/bft-labs/contactbook/pkg/log"
)

// Options tunes a Book session.
type Options struct {
	// Capacity bounds the number of contacts. Zero means store.DefaultCapacity.
	Capacity int

	// Verify re-validates every loaded record and logs the ones that fail.
	Verify bool

	// ExcludeSelfOnEdit lets an edited contact keep its own phone or email.
	// When false, re-entering the current value is rejected as a duplicate.
	ExcludeSelfOnEdit bool
}

// Book is one session over the contact store.
type Book struct {
	repo   ports.Repository
	store  *store.Store
	logger ports.Logger
	opts   Options
	state  State
}

// Open loads the persisted contacts into a fresh store and sorts them by name.
func Open(ctx context.Context, repo ports.Repository, logger ports.Logger, opts Options) (*Book, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	b := &Book{
		repo:   repo,
		store:  store.New(opts.Capacity),
		logger: logger,
		opts:   opts,
	}

	contacts, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	for i, c := range contacts {
		if opts.Verify {
			b.verify(i+1, c)
		}
		if err := b.store.Add(c); err != nil {
			return nil, fmt.Errorf("load contacts: record %d: %w", i+1, err)
		}
	}
	b.store.SortByName()

	logger.Info("contacts loaded",
		log.Int("count", b.store.Len()),
		log.Int("capacity", b.store.Cap()),
	)
	return b, nil
}

func (b *Book) verify(record int, c domain.Contact) {
	if _, err := validator.Contact(c, b.store); err != nil {
		b.logger.Warn("loaded record fails validation",
			log.Int("record", record),
			log.String("name", c.Name),
			log.Err(err),
		)
	}
}

// State returns the session persistence state.
func (b *Book) State() State { return b.state }

// Len returns the number of contacts.
func (b *Book) Len() int { return b.store.Len() }

// Capacity returns the store bound.
func (b *Book) Capacity() int { return b.store.Cap() }

// Contacts returns a copy of the contacts in store order.
func (b *Book) Contacts() []domain.Contact { return b.store.All() }

// At returns the contact at position i.
func (b *Book) At(i int) (domain.Contact, error) { return b.store.At(i) }

// Reserve fails with ErrCapacityExceeded when n more contacts would not fit.
func (b *Book) Reserve(n int) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	return b.store.Reserve(n)
}

// Check validates raw for field f against every stored contact.
func (b *Book) Check(f domain.Field, raw string) (string, error) {
	return validator.Field(f, raw, b.store)
}

// CheckEdit validates raw as the new value of field f for the contact at i.
func (b *Book) CheckEdit(i int, f domain.Field, raw string) (string, error) {
	if _, err := b.store.At(i); err != nil {
		return "", err
	}
	return validator.Field(f, raw, b.editView(i))
}

func (b *Book) editView(i int) validator.Lookup {
	if b.opts.ExcludeSelfOnEdit {
		return b.store.Except(i)
	}
	return b.store
}

// Add validates c and appends it. The store is not re-sorted; call Sort
// after a batch of additions.
func (b *Book) Add(c domain.Contact) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.store.Reserve(1); err != nil {
		return err
	}
	valid, err := validator.Contact(c, b.store)
	if err != nil {
		return err
	}
	if err := b.store.Add(valid); err != nil {
		return err
	}
	b.logger.Debug("contact added", log.String("name", valid.Name), log.Int("count", b.store.Len()))
	b.markDirty("add")
	return nil
}

// Sort orders the store by name.
func (b *Book) Sort() {
	b.store.SortByName()
}

// FindByName returns every position whose name matches query ignoring case.
func (b *Book) FindByName(query string) (store.Matches, error) {
	return b.store.FindByName(query)
}

// FindByPhone returns the position holding phone.
func (b *Book) FindByPhone(phone string) (int, error) {
	return b.store.FindByPhone(phone)
}

// FindByEmail returns the position holding email.
func (b *Book) FindByEmail(email string) (int, error) {
	return b.store.FindByEmail(email)
}

// Edit validates raw and stores it as field f of the contact at i.
func (b *Book) Edit(i int, f domain.Field, raw string) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	value, err := b.CheckEdit(i, f, raw)
	if err != nil {
		return err
	}
	if err := b.store.UpdateField(i, f, value); err != nil {
		return err
	}
	b.logger.Debug("contact edited", log.Int("position", i), log.String("field", f.String()))
	b.markDirty("edit")
	return nil
}

// Remove deletes the contact at i.
func (b *Book) Remove(i int) (domain.Contact, error) {
	if err := b.checkOpen(); err != nil {
		return domain.Contact{}, err
	}
	c, err := b.store.At(i)
	if err != nil {
		return domain.Contact{}, err
	}
	if err := b.store.RemoveAt(i); err != nil {
		return domain.Contact{}, err
	}
	b.logger.Debug("contact removed", log.String("name", c.Name), log.Int("count", b.store.Len()))
	b.markDirty("remove")
	return c, nil
}

// Save writes every contact, in store order, over the persisted list.
func (b *Book) Save(ctx context.Context) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if err := b.repo.Save(ctx, b.store.All()); err != nil {
		b.logger.Error("save failed", log.Err(err))
		return fmt.Errorf("save contacts: %w", err)
	}
	b.logger.Info("contacts saved", log.Int("count", b.store.Len()))
	return b.transitionTo(StateClean, "save")
}

// Close ends the session. Unsaved changes are discarded.
func (b *Book) Close() error {
	if b.state == StateDirty {
		b.logger.Warn("closing with unsaved changes", log.Int("count", b.store.Len()))
	}
	return b.transitionTo(StateClosed, "close")
}
