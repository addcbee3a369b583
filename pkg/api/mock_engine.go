package api

import (
	"sync"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// MockSearchEngine provides a mock implementation of domain.SearchEngine for testing.
// Calls are counted and each one returns Err when it is set.
type MockSearchEngine struct {
	mu sync.RWMutex

	Aliases      domain.AliasMap
	Stats        *domain.ReindexStats
	Documents    map[string]domain.StoredDocument
	Err          error
	LastActions  []domain.AliasAction
	LastReindex  domain.ReindexRequest
	LastBody     domain.IndexBody
	LastWrite    domain.WriteOptions
	createCalls  int
	updateCalls  int
	reindexCalls int
}

// NewMockSearchEngine creates a new mock engine
func NewMockSearchEngine() *MockSearchEngine {
	return &MockSearchEngine{
		Aliases:   make(domain.AliasMap),
		Stats:     &domain.ReindexStats{},
		Documents: make(map[string]domain.StoredDocument),
	}
}

func (m *MockSearchEngine) CreateIndex(name string, body domain.IndexBody) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.LastBody = body
	if m.Err != nil {
		return m.Err
	}
	m.Aliases[name] = []string{}
	return nil
}

func (m *MockSearchEngine) DeleteIndex(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Aliases, name)
	return nil
}

func (m *MockSearchEngine) GetIndex(name string) ([]domain.IndexInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return []domain.IndexInfo{{Name: name, Aliases: m.Aliases[name], Body: domain.IndexBody{}}}, nil
}

func (m *MockSearchEngine) ListAliases() domain.AliasMap {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Aliases
}

func (m *MockSearchEngine) UpdateAliases(actions []domain.AliasAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	m.LastActions = actions
	return m.Err
}

func (m *MockSearchEngine) Reindex(req domain.ReindexRequest) (*domain.ReindexStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reindexCalls++
	m.LastReindex = req
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stats, nil
}

func (m *MockSearchEngine) IndexDocument(target, id string, source domain.Document, opts domain.WriteOptions) (*domain.StoredDocument, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastWrite = opts
	if m.Err != nil {
		return nil, false, m.Err
	}
	existing, existed := m.Documents[id]
	doc := domain.StoredDocument{Index: target, ID: id, Version: existing.Version + 1, Source: source}
	m.Documents[id] = doc
	return &doc, !existed, nil
}

func (m *MockSearchEngine) GetDocument(target, id string) (*domain.StoredDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	doc := m.Documents[id]
	return &doc, nil
}

func (m *MockSearchEngine) Search(target string) ([]domain.StoredDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var docs []domain.StoredDocument
	for _, doc := range m.Documents {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (m *MockSearchEngine) GetMemoryStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{"indices": len(m.Aliases)}
}

// GetCreateCalls returns the number of create index calls
func (m *MockSearchEngine) GetCreateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

// GetUpdateCalls returns the number of alias update calls
func (m *MockSearchEngine) GetUpdateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updateCalls
}

// GetReindexCalls returns the number of reindex calls
func (m *MockSearchEngine) GetReindexCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reindexCalls
}
