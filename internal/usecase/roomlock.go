package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// roomLocks serializes check-then-write sequences per room. Holding the
// room's lock across conflict check and insert closes the race between
// concurrent bookings for overlapping dates.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the room's mutex and returns the unlock function.
func (l *roomLocks) Lock(roomID uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[roomID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
