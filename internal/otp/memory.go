// Package otp provides volatile keyed storage for one-time codes.
//
// The store is in-memory and non-durable: a process restart loses all live
// codes. That is acceptable for single-process deployments only; a
// multi-instance deployment needs a shared external store behind the same
// interface.
package otp

import (
	"sync"
	"time"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// Memory is an in-memory OTPStore with a background sweep that evicts
// expired entries. The sweep is a cleanup optimization only; verification
// checks expiry independently.
type Memory struct {
	mu      sync.Mutex
	entries map[string]model.OTPEntry
	locks   map[string]*keyLock

	logger    *logger.Logger
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

var _ model.OTPStore = (*Memory)(nil)

// NewMemory creates the store and starts its sweep loop. The caller owns the
// lifecycle and must call Close on shutdown.
func NewMemory(sweepInterval time.Duration, logger *logger.Logger) *Memory {
	s := &Memory{
		entries: make(map[string]model.OTPEntry),
		locks:   make(map[string]*keyLock),
		logger:  logger,
		done:    make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop(sweepInterval)

	return s
}

// Set stores the entry for the mobile, overwriting any previous one.
func (s *Memory) Set(mobile string, entry model.OTPEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[mobile] = entry
}

// Get returns the live entry for the mobile, if any.
func (s *Memory) Get(mobile string) (model.OTPEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[mobile]
	return entry, ok
}

// Delete removes the entry for the mobile and reports whether one existed.
func (s *Memory) Delete(mobile string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[mobile]
	delete(s.entries, mobile)
	return ok
}

// Do runs fn while holding the mobile's exclusion lock. Concurrent verify
// attempts for the same mobile serialize here, so the attempt counter is
// mutated exactly once per attempt. The sweep takes the same lock before
// deleting.
func (s *Memory) Do(mobile string, fn func()) {
	l := s.acquire(mobile)
	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.release(mobile, l)
	}()
	fn()
}

// Close stops the sweep loop and waits for it to exit.
func (s *Memory) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Memory) acquire(mobile string) *keyLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[mobile]
	if !ok {
		l = &keyLock{}
		s.locks[mobile] = l
	}
	l.refs++
	return l
}

func (s *Memory) release(mobile string, l *keyLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, mobile)
	}
}

func (s *Memory) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *Memory) sweep(now time.Time) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	removed := 0
	for _, k := range keys {
		s.Do(k, func() {
			entry, ok := s.Get(k)
			if ok && now.After(entry.ExpiresAt) {
				s.Delete(k)
				removed++
			}
		})
	}

	if removed > 0 {
		s.logger.Debug("OTP store: sweep removed expired entries", "count", removed)
	}
}
