// Package lock provides short-lived keyed locks used to keep a single writer
// per user for slow operations such as plan generation and promo redemption.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrHeld is returned when another holder owns the key.
var ErrHeld = errors.New("lock is held")

// Locker acquires a key for at most ttl. The returned release func is safe to
// call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
