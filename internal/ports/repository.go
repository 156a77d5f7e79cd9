package ports

import (
	"context"

	"github.com/bft-labs/contactbook/internal/domain"
)

// Repository reads and writes the persisted contact list.
type Repository interface {
	// Load returns every persisted contact in file order.
	// Returns an error wrapping domain.ErrDataFileMissing when the backing
	// file cannot be opened, and domain.ErrMalformedRecord when it cannot be parsed.
	Load(ctx context.Context) ([]domain.Contact, error)

	// Save replaces the persisted contact list with contacts.
	// Implementations must not leave a partially written list behind.
	Save(ctx context.Context, contacts []domain.Contact) error
}
