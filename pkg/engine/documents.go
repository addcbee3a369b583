package engine

import (
	"sort"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// IndexDocument writes a document into the index, or the single index behind the alias, named target
// The returned flag is true when the document did not exist before.
func (e *Engine) IndexDocument(target, id string, source domain.Document, opts domain.WriteOptions) (*domain.StoredDocument, bool, error) {
	if id == "" {
		return nil, false, &IllegalArgumentError{Reason: "document id is required"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	index, err := e.resolveWriteIndex(target)
	if err != nil {
		return nil, false, err
	}

	_, existed := index.Documents[id]
	stored, err := writeDocument(index, id, source, opts)
	if err != nil {
		return nil, false, err
	}
	e.markDirty()
	return copyStored(stored), !existed, nil
}

// writeDocument applies version semantics and stores the document (caller must hold mu).
// The internal version type increments the stored version; the external one
// keeps the provided version and rejects it unless it is greater than the stored one.
func writeDocument(index *Index, id string, source domain.Document, opts domain.WriteOptions) (*domain.StoredDocument, error) {
	existing, exists := index.Documents[id]

	var version int64
	switch opts.VersionType {
	case "", domain.VersionTypeInternal:
		version = 1
		if exists {
			version = existing.Version + 1
		}
	case domain.VersionTypeExternal:
		if opts.Version <= 0 {
			return nil, &IllegalArgumentError{Reason: "an external version must be a positive number"}
		}
		if exists && existing.Version >= opts.Version {
			return nil, &VersionConflictError{Index: index.Name, ID: id, Current: existing.Version, Provided: opts.Version}
		}
		version = opts.Version
	default:
		return nil, &IllegalArgumentError{Reason: "No version type match [" + opts.VersionType + "]"}
	}

	stored := &domain.StoredDocument{
		Index:   index.Name,
		ID:      id,
		Version: version,
		Source:  copyDocument(source),
	}
	index.Documents[id] = stored
	return stored, nil
}

// GetDocument reads a document by id from the named index or alias
func (e *Engine) GetDocument(target, id string) (*domain.StoredDocument, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	index, err := e.resolveWriteIndex(target)
	if err != nil {
		return nil, err
	}

	doc, exists := index.Documents[id]
	if !exists {
		return nil, &DocumentNotFoundError{Index: index.Name, ID: id}
	}
	return copyStored(doc), nil
}

// Search returns every document of the indices the target resolves to, ordered by index then id
func (e *Engine) Search(target string) ([]domain.StoredDocument, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	indices, err := e.resolve(target)
	if err != nil {
		return nil, err
	}

	var hits []domain.StoredDocument
	for _, index := range indices {
		for _, id := range documentIDs(index) {
			hits = append(hits, *copyStored(index.Documents[id]))
		}
	}
	return hits, nil
}

func documentIDs(index *Index) []string {
	ids := make([]string, 0, len(index.Documents))
	for id := range index.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyDocument(doc domain.Document) domain.Document {
	docCopy := make(domain.Document, len(doc))
	for k, v := range doc {
		docCopy[k] = v
	}
	return docCopy
}

func copyStored(doc *domain.StoredDocument) *domain.StoredDocument {
	return &domain.StoredDocument{
		Index:   doc.Index,
		ID:      doc.ID,
		Version: doc.Version,
		Source:  copyDocument(doc.Source),
	}
}
