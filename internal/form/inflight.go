package form

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrSubmitInProgress = errors.New("a submission for this form is already in progress")
	ErrAlreadySubmitted = errors.New("this form has already been submitted")
)

const defaultRetention = 15 * time.Minute

type slot struct {
	done bool
	at   time.Time
}

// Inflight tracks form instance tokens with an outstanding or completed submission.
// Completed tokens are remembered for the retention period so a replayed
// POST cannot repeat the create.
type Inflight struct {
	mu        sync.Mutex
	slots     map[string]slot
	retention time.Duration
	now       func() time.Time
}

func NewInflight(retention time.Duration) *Inflight {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Inflight{slots: make(map[string]slot), retention: retention, now: time.Now}
}

// Acquire claims token for one submission.
func (f *Inflight) Acquire(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	f.prune(now)

	if s, ok := f.slots[token]; ok {
		if s.done {
			return ErrAlreadySubmitted
		}
		return ErrSubmitInProgress
	}
	f.slots[token] = slot{at: now}
	return nil
}

// Release frees token so the same form instance can be submitted again.
func (f *Inflight) Release(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.slots, token)
}

// Complete marks token as successfully submitted.
func (f *Inflight) Complete(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.slots[token] = slot{done: true, at: f.now()}
}

// Len returns the number of tracked tokens.
func (f *Inflight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.slots)
}

func (f *Inflight) prune(now time.Time) {
	for token, s := range f.slots {
		if now.Sub(s.at) > f.retention {
			delete(f.slots, token)
		}
	}
}
