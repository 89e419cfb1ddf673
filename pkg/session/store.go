package session

import "context"

// Store is the persistence medium for the session document. Implementations
// must make Save atomic: a reader never observes a half-written document.
type Store interface {
	// Load returns the raw session document, or ErrNotFound when none exists.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the session document atomically.
	Save(ctx context.Context, data []byte) error

	// Clear removes the session document. Clearing an absent document is a
	// no-op, not an error.
	Clear(ctx context.Context) error
}
