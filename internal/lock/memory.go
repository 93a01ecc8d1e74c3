package lock

import (
	"context"
	"sync"
	"time"
)

type MemoryLocker struct {
	mu      sync.Mutex
	holders map[string]memoryHolder
	tokens  uint64
	now     func() time.Time
}

type memoryHolder struct {
	token   uint64
	expires time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		holders: make(map[string]memoryHolder),
		now:     time.Now,
	}
}

func (locker *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	locker.mu.Lock()
	defer locker.mu.Unlock()

	now := locker.now()
	if holder, held := locker.holders[key]; held && now.Before(holder.expires) {
		return nil, ErrHeld
	}

	locker.tokens++
	token := locker.tokens
	locker.holders[key] = memoryHolder{token: token, expires: now.Add(ttl)}

	var once sync.Once
	return func() {
		once.Do(func() {
			locker.mu.Lock()
			defer locker.mu.Unlock()
			if holder, held := locker.holders[key]; held && holder.token == token {
				delete(locker.holders, key)
			}
		})
	}, nil
}
