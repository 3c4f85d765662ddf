// Package remote declares the remote-shell storage backend.
//
// A Shell describes a collection kept on another machine and reached over
// SSH. Only the descriptor exists: every operation fails with
// core.ErrNotImplemented, which also matches core.ErrConnection so callers
// treat it like an unreachable store.
package remote

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/aretw0/snipperclipper/pkg/core"
)

// DefaultPort is the SSH port used when none is given.
const DefaultPort = 22

// Shell identifies a document on a remote host.
type Shell[T any] struct {
	Host string
	Port int
	User string
	Path string
}

// NewShell creates a remote descriptor. A zero port means DefaultPort.
func NewShell[T any](host string, port int, user, path string) *Shell[T] {
	if port == 0 {
		port = DefaultPort
	}
	return &Shell[T]{Host: host, Port: port, User: user, Path: path}
}

// Address returns "user@host:port:path".
func (s *Shell[T]) Address() string {
	hostPort := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	if s.User != "" {
		hostPort = s.User + "@" + hostPort
	}
	return hostPort + ":" + s.Path
}

func (s *Shell[T]) unavailable(op string) error {
	return fmt.Errorf("%w: %s %s: %w", core.ErrConnection, op, s.Address(), core.ErrNotImplemented)
}

// Load always fails.
func (s *Shell[T]) Load(ctx context.Context) (T, error) {
	var zero T
	return zero, s.unavailable("load")
}

// Update always fails and writes nothing.
func (s *Shell[T]) Update(ctx context.Context, data T) (T, error) {
	return data, s.unavailable("update")
}

// State implements introspection.Introspectable.
func (s *Shell[T]) State() any {
	return map[string]any{
		"address":     s.Address(),
		"implemented": false,
	}
}

// ComponentType implements introspection.Component.
func (s *Shell[T]) ComponentType() string {
	return "ssh"
}

var _ core.Storage[core.CollectionData] = (*Shell[core.CollectionData])(nil)
