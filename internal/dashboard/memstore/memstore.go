// Package memstore provides an in-memory implementation of dashboard.Store.
// Suitable for tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/linnemanlabs/dashnote/internal/dashboard"
)

// Store holds dashboard documents in memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte // document name -> raw JSON
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// Put seeds a document without validation.
func (s *Store) Put(name string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = append([]byte(nil), raw...)
}

// Get returns the stored bytes for name.
func (s *Store) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

// List returns the sorted names of all stored documents.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load returns a validated document built from a copy of the stored bytes.
func (s *Store) Load(_ context.Context, name string) (*dashboard.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("document %s: not found", name)
	}
	return dashboard.NewDocument(name, append([]byte(nil), raw...))
}

// Save stores a copy of the document's current bytes.
func (s *Store) Save(_ context.Context, doc *dashboard.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Name()] = append([]byte(nil), doc.Raw()...)
	return nil
}
