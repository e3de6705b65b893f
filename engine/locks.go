package engine

import "sync"

// noticeLocks serializes mutating operations per bidding notice. Two
// concurrent selections racing on the same notice could otherwise leave two
// participations flagged as winner at once, so the engine is single-writer
// per notice ID. Read-only predicates never take these locks.
type noticeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newNoticeLocks() *noticeLocks {
	return &noticeLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the mutex for the notice ID and returns the unlock func,
// meant for `defer l.lock(id)()`. Lock entries are retained for the lifetime
// of the engine; the set of active notices per process is small.
func (l *noticeLocks) lock(noticeID string) func() {
	l.mu.Lock()
	m, ok := l.locks[noticeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[noticeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
