package service

import (
	"sort"
	"sync"
)

// dateLockTable serializes submit/amend operations per operational date.
// Two concurrent submissions for the same date must not both observe
// "no conflict" and both be admitted into the same slot.
type dateLockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDateLockTable() *dateLockTable {
	return &dateLockTable{
		locks: make(map[string]*sync.Mutex),
	}
}

func (t *dateLockTable) get(date string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[date]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[date] = lock
	}
	return lock
}

// acquire locks every given date and returns the matching release function.
// Dates are deduplicated and locked in sorted order so that an amend moving
// an appointment between two dates cannot deadlock against another.
func (t *dateLockTable) acquire(dates ...string) func() {
	unique := make(map[string]bool, len(dates))
	for _, d := range dates {
		unique[d] = true
	}

	ordered := make([]string, 0, len(unique))
	for d := range unique {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	acquired := make([]*sync.Mutex, 0, len(ordered))
	for _, d := range ordered {
		lock := t.get(d)
		lock.Lock()
		acquired = append(acquired, lock)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}
