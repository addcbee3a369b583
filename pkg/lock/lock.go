// Package lock provides leases that keep two migrations of the same alias
// from running at the same time.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLockHeld is returned when the key is leased by another owner
var ErrLockHeld = errors.New("lock is held by another owner")

// ErrNotOwner is returned when releasing a lease that expired or was taken over
var ErrNotOwner = errors.New("lock is not owned by this token")

// Locker hands out expiring leases on string keys
type Locker interface {
	// Lock leases key for ttl and returns the owner token
	Lock(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Unlock releases key if it is still leased with token
	Unlock(ctx context.Context, key, token string) error
}

func newToken() string {
	return uuid.NewString()
}
