package repository

import (
	"context"
	"github.com/google/uuid"
	"sync/atomic"
)

// IDAllocator hands out identifiers for backends that cannot assign them
// natively. Reserve is told about caller-supplied ids so Next skips them.
type IDAllocator[ID comparable] interface {
	Next(ctx context.Context) (ID, error)
	Reserve(ctx context.Context, id ID) error
}

// IDGenerator is an IDAllocator whose ids never collide with supplied ones,
// or whose callers skip taken ids themselves.
type IDGenerator[ID comparable] func(ctx context.Context) (ID, error)

func (g IDGenerator[ID]) Next(ctx context.Context) (ID, error) {
	return g(ctx)
}

func (g IDGenerator[ID]) Reserve(context.Context, ID) error {
	return nil
}

// SequenceIDs returns a process-local, monotonically increasing generator
// starting at 1.
func SequenceIDs() IDGenerator[uint] {
	var next atomic.Uint64
	return func(context.Context) (uint, error) {
		return uint(next.Add(1)), nil
	}
}

func UUIDs() IDGenerator[uuid.UUID] {
	return func(context.Context) (uuid.UUID, error) {
		return uuid.NewRandom()
	}
}
