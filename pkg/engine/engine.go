package engine

import (
	"sync"
	"time"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Index is one physical index held by the engine
type Index struct {
	Name      string
	Body      domain.IndexBody
	Aliases   map[string]struct{}
	Documents map[string]*domain.StoredDocument
	CreatedAt time.Time
}

func newIndex(name string, body domain.IndexBody) *Index {
	if body == nil {
		body = domain.IndexBody{}
	}
	return &Index{
		Name:      name,
		Body:      body,
		Aliases:   make(map[string]struct{}),
		Documents: make(map[string]*domain.StoredDocument),
		CreatedAt: time.Now(),
	}
}

// Engine is an in-memory search engine with an index/alias namespace,
// versioned documents and optional file persistence.
// It implements domain.SearchEngine.
type Engine struct {
	mu      sync.RWMutex
	indices map[string]*Index
	dirty   bool

	// Configuration
	dataFile       string
	backgroundSave bool
	saveInterval   time.Duration

	// Background workers
	backgroundWg sync.WaitGroup
	stopChan     chan struct{}
}

// NewEngine creates a new engine
func NewEngine(options ...Option) *Engine {
	engine := &Engine{
		indices:      make(map[string]*Index),
		saveInterval: 5 * time.Minute,
		stopChan:     make(chan struct{}),
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// markDirty flags the namespace as changed since the last save (caller must hold mu)
func (e *Engine) markDirty() {
	e.dirty = true
}

// IsDirty reports whether there are changes not yet written to the data file
func (e *Engine) IsDirty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dirty
}

// DataFile returns the configured data file, if any
func (e *Engine) DataFile() string {
	return e.dataFile
}

var _ domain.SearchEngine = (*Engine)(nil)
