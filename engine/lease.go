package engine

import "sync"

// Lease guards single-session attachment to an engine.
type Lease struct {
	mu   sync.Mutex
	held bool
}

// Acquire takes the lease or fails with ErrEngineBusy. release is idempotent.
func (l *Lease) Acquire() (release func(), err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held {
		return nil, ErrEngineBusy
	}
	l.held = true

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.held = false
			l.mu.Unlock()
		})
	}, nil
}

// Held reports whether a session currently holds the lease.
func (l *Lease) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}
