package lock

import (
	"context"
	"sync"
	"time"
)

type lease struct {
	token   string
	expires time.Time
}

// MemoryLocker is a Locker for a single process
type MemoryLocker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

// NewMemoryLocker creates an empty in-process locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

func (m *MemoryLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if current, held := m.leases[key]; held && now.Before(current.expires) {
		return "", ErrLockHeld
	}

	token := newToken()
	m.leases[key] = lease{token: token, expires: now.Add(ttl)}
	return token, nil
}

func (m *MemoryLocker) Unlock(ctx context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, held := m.leases[key]
	if !held || current.token != token || !m.now().Before(current.expires) {
		return ErrNotOwner
	}
	delete(m.leases, key)
	return nil
}
