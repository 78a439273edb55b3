package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-now/internal/location"
)

var (
	// ErrNotFound is returned when no fix is young enough.
	ErrNotFound = errors.New("no position fix available")
)

// MemoryStore is a concurrency-safe in-memory history of position fixes.
// It lives for the process only.
type MemoryStore struct {
	mu sync.RWMutex

	fixes []location.Fix

	// retention configuration
	maxHistory int           // max number of fixes kept
	maxAge     time.Duration // optional max age for fixes

	now func() time.Time
}

var _ location.FixCache = (*MemoryStore)(nil)

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveFix appends a fix and enforces retention.
func (s *MemoryStore) SaveFix(fix location.Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fixes = append(s.fixes, fix)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.fixes) > s.maxHistory {
		over := len(s.fixes) - s.maxHistory
		s.fixes = s.fixes[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.fixes); i++ {
			if !s.fixes[i].Timestamp.Before(cutoff) {
				break
			}
		}
		s.fixes = s.fixes[i:]
	}
}

// LatestFix returns the most recent fix if it is not older than maxAge.
func (s *MemoryStore) LatestFix(maxAge time.Duration) (location.Fix, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.fixes) == 0 {
		return location.Fix{}, ErrNotFound
	}
	latest := s.fixes[len(s.fixes)-1]
	if s.now().Sub(latest.Timestamp) > maxAge {
		return location.Fix{}, ErrNotFound
	}
	return latest, nil
}

// Len reports how many fixes are retained.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fixes)
}
