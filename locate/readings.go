package locate

import (
	"sync"
	"time"
)

// ReadingStore keeps the latest distance reading per (device, anchor) pair.
// Stale entries are pruned lazily when read; there is no sweep task.
type ReadingStore struct {
	mu       sync.Mutex
	readings map[string]map[string]Reading // device -> anchor -> latest
}

// NewReadingStore creates an empty ReadingStore.
func NewReadingStore() *ReadingStore {
	return &ReadingStore{
		readings: make(map[string]map[string]Reading),
	}
}

// Ingest records a reading, overwriting any previous reading from the same
// anchor for the same device. Zero distances are stored as-is; the
// triangulation weight clamp handles them.
func (s *ReadingStore) Ingest(deviceID, anchorID string, distance float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byAnchor, ok := s.readings[deviceID]
	if !ok {
		byAnchor = make(map[string]Reading)
		s.readings[deviceID] = byAnchor
	}
	byAnchor[anchorID] = Reading{AnchorID: anchorID, Distance: distance, At: now}
}

// ValidReadings returns the readings for a device younger than ttl and
// deletes the rest. The comparison is strict: a reading aged exactly ttl is
// already stale. now.Sub uses the monotonic clock when both stamps carry
// one, so wall-clock adjustments do not resurrect old readings.
func (s *ReadingStore) ValidReadings(deviceID string, now time.Time, ttl time.Duration) map[string]Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	byAnchor := s.readings[deviceID]
	valid := make(map[string]Reading, len(byAnchor))
	for anchorID, r := range byAnchor {
		if now.Sub(r.At) < ttl {
			valid[anchorID] = r
		} else {
			delete(byAnchor, anchorID)
		}
	}
	return valid
}

// Count returns the number of stored readings for a device, stale included.
func (s *ReadingStore) Count(deviceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.readings[deviceID])
}
