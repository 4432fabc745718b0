package storage

import (
	"sort"
	"sync"

	"docanalyst/internal/models"
	"docanalyst/internal/util"
)

// DocumentStore is the in-memory registry of processed documents, keyed by
// filename. Put replaces the whole entry, so a reader can never observe a
// document mixing state from two ingestions. Lifetime is the process
// lifetime; there is no eviction.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*models.ProcessedDocument
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*models.ProcessedDocument)}
}

// Put stores doc under id, overwriting any previous entry.
func (s *DocumentStore) Put(id string, doc *models.ProcessedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = doc
}

// Get returns the stored document or util.ErrDocumentNotFound.
func (s *DocumentStore) Get(id string) (*models.ProcessedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, util.ErrDocumentNotFound
	}
	return doc, nil
}

// List returns the stored document ids in lexical order.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
