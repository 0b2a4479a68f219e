package service

import "sync"

// dateLocks serializes all mutations touching one booking date. The key set
// stays tiny: the booking window only ever spans a handful of dates, so
// entries are never evicted.
type dateLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for date and returns its unlock func.
func (d *dateLocks) Lock(date string) func() {
	d.mu.Lock()
	l, ok := d.locks[date]
	if !ok {
		l = &sync.Mutex{}
		d.locks[date] = l
	}
	d.mu.Unlock()

	l.Lock()
	return l.Unlock
}
