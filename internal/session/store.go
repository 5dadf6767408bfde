package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session not found")

// Store keeps conversation state keyed by the caller-supplied session id.
//
// Update runs fn under per-key mutual exclusion, creating the session when it
// does not exist yet, and persists the result. It is the only safe way to do
// read-modify-write; Get/Upsert/Delete are for inspection and administration.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Upsert(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}
