package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired means the lock was not obtained within the caller's context
// deadline. Nothing was modified; the operation can be retried.
var ErrNotAcquired = errors.New("lock not acquired within wait bound")

// Manager serializes commits per partition key. Acquire blocks until the
// key's lock is held or ctx is done; the returned release function must be
// called exactly once. Locks on different keys never block each other.
type Manager interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
