package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store and EventRepo for tests. It mirrors the
// SQLite semantics: atomic whole-document writes, conditional create, and
// creation-order queries.
type MemoryStore struct {
	mu   sync.Mutex
	seq  int
	docs map[string]map[string]memoryDoc

	LLMEvents     []LLMRequestEventData
	AttemptEvents []GenerationAttemptData
}

type memoryDoc struct {
	data json.RawMessage
	seq  int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]memoryDoc)}
}

func (m *MemoryStore) Get(_ context.Context, collection, key string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[collection][key]
	if !ok {
		return nil, false, nil
	}
	return doc.data, true, nil
}

func (m *MemoryStore) Set(_ context.Context, collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.collection(collection)
	seq := m.seq
	if existing, ok := coll[key]; ok {
		seq = existing.seq // updates keep creation order
	} else {
		m.seq++
	}
	coll[key] = memoryDoc{data: data, seq: seq}
	return nil
}

func (m *MemoryStore) SetIfAbsent(_ context.Context, collection, key string, doc any) (bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.collection(collection)
	if _, ok := coll[key]; ok {
		return false, nil
	}
	coll[key] = memoryDoc{data: data, seq: m.seq}
	m.seq++
	return true, nil
}

func (m *MemoryStore) Query(_ context.Context, collection string, filter map[string]any) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	type entry struct {
		doc memoryDoc
	}
	var matched []entry
	for _, doc := range m.docs[collection] {
		if matchesFilter(doc.data, filter) {
			matched = append(matched, entry{doc})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].doc.seq < matched[j].doc.seq })

	out := make([]json.RawMessage, len(matched))
	for i, e := range matched {
		out[i] = e.doc.data
	}
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs[collection], key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LLMEvents = append(m.LLMEvents, data)
	return nil
}

func (m *MemoryStore) AppendGenerationAttempt(_ context.Context, data GenerationAttemptData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AttemptEvents = append(m.AttemptEvents, data)
	return nil
}

func (m *MemoryStore) collection(name string) map[string]memoryDoc {
	coll, ok := m.docs[name]
	if !ok {
		coll = make(map[string]memoryDoc)
		m.docs[name] = coll
	}
	return coll
}

func matchesFilter(data json.RawMessage, filter map[string]any) bool {
	if len(filter) == 0 {
		return true
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	for k, want := range filter {
		got, ok := fields[k]
		if !ok || fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}

// Interface checks.
var (
	_ Store     = (*MemoryStore)(nil)
	_ EventRepo = (*MemoryStore)(nil)
)
