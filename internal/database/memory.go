package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mamiri/collectiontools/internal/models"
	"google.golang.org/api/iterator"
)

// ErrDocumentNotFound mirrors Firestore's NotFound on updates of missing documents
var ErrDocumentNotFound = errors.New("document not found")

// MemoryStore is an in-process Store. Tests and dry local runs use it instead of
// a Firestore emulator.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}

	// Optional failure injection
	SetErr    func(collection, id string) error
	UpdateErr func(collection, id string) error
	CursorErr map[string]error // returned once a collection's documents are exhausted

	Reads  int
	Writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]interface{})}
}

func validCollectionPath(path string) bool {
	if path == "" {
		return false
	}
	segments := strings.Split(path, "/")
	if len(segments)%2 == 0 {
		return false
	}
	for _, s := range segments {
		if s == "" {
			return false
		}
	}
	return true
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// Put seeds a document without counting it as a write
func (m *MemoryStore) Put(collection, id string, data map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, data)
}

func (m *MemoryStore) put(collection, id string, data map[string]interface{}) {
	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string]map[string]interface{})
		m.collections[collection] = docs
	}
	docs[id] = cloneData(data)
}

// Get returns a copy of a stored document
func (m *MemoryStore) Get(collection, id string) (map[string]interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.collections[collection][id]
	if !ok {
		return nil, false
	}
	return cloneData(data), true
}

// Snapshot returns every document of a collection ordered by ID
func (m *MemoryStore) Snapshot(collection string) []models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(collection)
}

func (m *MemoryStore) snapshot(collection string) []models.Document {
	docs := m.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Document{ID: id, Data: cloneData(docs[id])})
	}
	return out
}

func (m *MemoryStore) Documents(_ context.Context, collection string) DocumentIterator {
	if !validCollectionPath(collection) {
		return &errIterator{err: fmt.Errorf("%w: %q", ErrInvalidCollection, collection)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return &memoryIterator{
		store: m,
		docs:  m.snapshot(collection),
		tail:  m.CursorErr[collection],
	}
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, data map[string]interface{}) error {
	if !validCollectionPath(collection) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	if m.SetErr != nil {
		if err := m.SetErr(collection, id); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	m.put(collection, id, data)
	return nil
}

func (m *MemoryStore) UpdateField(_ context.Context, collection, id, field string, value interface{}) error {
	if !validCollectionPath(collection) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	if m.UpdateErr != nil {
		if err := m.UpdateErr(collection, id); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrDocumentNotFound, collection, id)
	}
	m.Writes++
	doc[field] = value
	return nil
}

type memoryIterator struct {
	store *MemoryStore
	docs  []models.Document
	pos   int
	tail  error
}

func (it *memoryIterator) Next() (*models.Document, error) {
	if it.pos >= len(it.docs) {
		if it.tail != nil {
			return nil, it.tail
		}
		return nil, iterator.Done
	}
	doc := it.docs[it.pos]
	it.pos++

	it.store.mu.Lock()
	it.store.Reads++
	it.store.mu.Unlock()
	return &doc, nil
}

func (it *memoryIterator) Stop() {
	it.pos = len(it.docs)
	it.tail = nil
}

var _ Store = (*MemoryStore)(nil)
