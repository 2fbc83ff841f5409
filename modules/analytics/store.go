package analytics

import (
	"sync"
	"time"
)

// ServeRecord is one tracked file delivery.
type ServeRecord struct {
	FileID   string
	Name     string
	MimeType string
	Size     int64
	ServedAt time.Time
}

// Store keeps in-memory usage counters. Nothing is persisted; counters reset
// on restart.
type Store struct {
	mu           sync.Mutex
	listingCount int
	serveCounts  map[string]int
	lastServed   map[string]ServeRecord
}

// NewStore creates an empty analytics store.
func NewStore() *Store {
	return &Store{
		serveCounts: make(map[string]int),
		lastServed:  make(map[string]ServeRecord),
	}
}

// RecordListing counts one listing render and returns the running total.
func (s *Store) RecordListing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listingCount++
	return s.listingCount
}

// RecordServe tracks one delivery and returns the file's serve count.
func (s *Store) RecordServe(rec ServeRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serveCounts[rec.Name]++
	s.lastServed[rec.Name] = rec
	return s.serveCounts[rec.Name]
}

// ListingCount returns how many listings have been rendered.
func (s *Store) ListingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listingCount
}

// ServeCount returns how many times the named file has been served.
func (s *Store) ServeCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveCounts[name]
}

// LastServed returns the most recent delivery record for the named file.
func (s *Store) LastServed(name string) (ServeRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lastServed[name]
	return rec, ok
}
