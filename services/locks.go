package services

import "sync"

// trainLocks hands out one mutex per train number. Entries are dropped once
// no caller holds or waits on them.
type trainLocks struct {
	mu    sync.Mutex
	locks map[string]*trainLock
}

type trainLock struct {
	sync.Mutex
	refs int
}

func newTrainLocks() *trainLocks {
	return &trainLocks{locks: make(map[string]*trainLock)}
}

// lock blocks until the train's mutex is held and returns its release func
func (l *trainLocks) lock(trainNumber string) func() {
	l.mu.Lock()
	tl, ok := l.locks[trainNumber]
	if !ok {
		tl = &trainLock{}
		l.locks[trainNumber] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.Lock()
	return func() {
		tl.Unlock()
		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, trainNumber)
		}
		l.mu.Unlock()
	}
}

// size reports how many trains currently have a lock entry
func (l *trainLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
