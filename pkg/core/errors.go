package core

import "errors"

// Error kinds reported by storage backends. Adapters wrap the underlying cause
// together with one of these, so both can be matched with errors.Is.
var (
	// ErrConnection means the backend could not be reached or read (e.g. missing file).
	ErrConnection = errors.New("storage unreachable")
	// ErrSerialization means a payload could not be encoded, or stored bytes
	// do not decode into the expected shape.
	ErrSerialization = errors.New("serialization failed")
	// ErrIO means a write could not complete.
	ErrIO = errors.New("write failed")
	// ErrNotImplemented is returned by declared but unimplemented backends.
	ErrNotImplemented = errors.New("storage backend not implemented")
	// ErrLockTimeout means exclusive access to the backend could not be acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for storage lock")
)

// Collection errors.
var (
	ErrUnscopable  = errors.New("could not scope by that language type")
	ErrDuplicateID = errors.New("snippet id already exists in collection")
)
