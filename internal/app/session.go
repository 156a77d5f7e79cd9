package app

import (
	"errors"

	"github.com/bft-labs/contactbook/pkg/log"
)

// State is the persistence state of a Book session.
type State int

const (
	// StateClean means the store matches the data file.
	StateClean State = iota
	// StateDirty means the store has changes not yet saved.
	StateDirty
	// StateClosed means the session ended; no further operations are accepted.
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateClean:
		return "Clean"
	case StateDirty:
		return "Dirty"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// ErrClosed is returned by every Book operation after Close.
var ErrClosed = errors.New("contactbook: session closed")

// transitionTo moves the session to next and logs the change.
// Closed is terminal.
func (b *Book) transitionTo(next State, reason string) error {
	prev := b.state
	if prev == StateClosed {
		return ErrClosed
	}
	b.state = next
	if prev != next {
		b.logger.Debug("session state",
			log.String("from", prev.String()),
			log.String("to", next.String()),
			log.String("reason", reason),
		)
	}
	return nil
}

func (b *Book) markDirty(reason string) {
	_ = b.transitionTo(StateDirty, reason)
}

func (b *Book) checkOpen() error {
	if b.state == StateClosed {
		return ErrClosed
	}
	return nil
}
