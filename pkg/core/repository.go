package core

import "context"

// Storage defines the contract for persisting one aggregate of type T.
// Adhering to this interface keeps the core independent of the underlying
// medium (file, local database, remote shell).
type Storage[T any] interface {
	// Load retrieves and decodes the persisted payload.
	// It fails with ErrConnection when the medium is unreachable or unreadable,
	// and with ErrSerialization when the stored bytes do not decode into T.
	Load(ctx context.Context) (T, error)

	// Update encodes data fully and writes it back, returning data unchanged.
	// It fails with ErrSerialization when data cannot be encoded and with
	// ErrIO when the write cannot complete.
	Update(ctx context.Context, data T) (T, error)
}

// Modifier is implemented by backends that can run a read-modify-write cycle
// while holding exclusive access, so that concurrent writers serialize
// instead of overwriting each other's changes.
type Modifier[T any] interface {
	// Modify loads the current payload (exists is false when nothing has been
	// persisted yet), passes it to fn and writes fn's result, all under one lock.
	Modify(ctx context.Context, fn func(current T, exists bool) (T, error)) (T, error)
}

// Watchable is implemented by backends that can report changes made to the
// persisted state by other processes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
