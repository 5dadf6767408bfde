package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemoryStore is the process-local Store backing. Sessions expire after the
// configured TTL, measured from last update, and are removed by a background
// sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memEntry
	ttl      time.Duration
	logger   *slog.Logger
	done     chan struct{}
	wg       sync.WaitGroup
}

type memEntry struct {
	mu   sync.Mutex
	sess *Session
}

func NewMemoryStore(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memEntry),
		ttl:      ttl,
		logger:   logger,
		done:     make(chan struct{}),
	}
	if ttl > 0 {
		s.wg.Add(1)
		go s.sweep()
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.sess == nil {
		// Entry reserved by a failed turn that never committed.
		return nil, ErrNotFound
	}
	return entry.sess.Clone(), nil
}

func (s *MemoryStore) Upsert(ctx context.Context, sess *Session) error {
	entry := s.entryFor(sess.ID)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	cp := sess.Clone()
	cp.UpdatedAt = time.Now().UTC()
	entry.sess = cp
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Update serializes concurrent turns for the same session behind a per-key
// lock. fn runs against a working copy that is committed only when fn
// succeeds, so a failed turn leaves the session untouched, matching the
// Postgres backing's rollback.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	entry := s.entryFor(id)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	work := New(id)
	if entry.sess != nil {
		work = entry.sess.Clone()
	}
	if err := fn(work); err != nil {
		return nil, err
	}
	work.UpdatedAt = time.Now().UTC()
	entry.sess = work
	return work.Clone(), nil
}

// Close stops the expiry sweep.
func (s *MemoryStore) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *MemoryStore) entryFor(id string) *memEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		entry = &memEntry{}
		s.sessions[id] = entry
	}
	return entry
}

func (s *MemoryStore) sweep() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.expire(time.Now().UTC().Add(-s.ttl))
		}
	}
}

// expire removes sessions last touched before cutoff. The scan never waits
// on a busy entry while holding the map lock: entries are snapshotted first,
// checked with TryLock (an in-flight turn just defers that id to the next
// tick), and stale ids are deleted in a second short critical section. A slow
// upstream call therefore stalls only its own session, never the sweep or
// other sessions' lookups.
func (s *MemoryStore) expire(cutoff time.Time) {
	s.mu.RLock()
	snapshot := make(map[string]*memEntry, len(s.sessions))
	for id, entry := range s.sessions {
		snapshot[id] = entry
	}
	s.mu.RUnlock()

	var stale []string
	for id, entry := range snapshot {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.sess == nil || entry.sess.UpdatedAt.Before(cutoff) {
			stale = append(stale, id)
		}
		entry.mu.Unlock()
	}
	if len(stale) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range stale {
		entry, ok := s.sessions[id]
		if !ok {
			continue
		}
		// Re-check under the lock; the entry may have been touched
		// since the scan.
		if !entry.mu.TryLock() {
			continue
		}
		if entry.sess == nil || entry.sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			if s.logger != nil {
				s.logger.Debug("session expired", "session_id", id)
			}
		}
		entry.mu.Unlock()
	}
}
