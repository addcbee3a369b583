package engine

import (
	"time"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Reindex copies every document of the source index (or alias) into the destination.
// With the external version type the source versions are preserved and documents
// whose destination version is already equal or newer are counted as conflicts
// and skipped; the copy carries on past them.
func (e *Engine) Reindex(req domain.ReindexRequest) (*domain.ReindexStats, error) {
	start := time.Now()

	if req.Source == "" || req.Dest == "" {
		return nil, &IllegalArgumentError{Reason: "reindex requires both [source.index] and [dest.index]"}
	}
	switch req.VersionType {
	case "", domain.VersionTypeInternal, domain.VersionTypeExternal:
	default:
		return nil, &IllegalArgumentError{Reason: "No version type match [" + req.VersionType + "]"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sources, err := e.resolve(req.Source)
	if err != nil {
		return nil, err
	}
	dest, err := e.resolveWriteIndex(req.Dest)
	if err != nil {
		return nil, err
	}
	for _, source := range sources {
		if source == dest {
			return nil, &IllegalArgumentError{Reason: "reindex cannot write into an index its reading from [" + dest.Name + "]"}
		}
	}

	stats := &domain.ReindexStats{}
	for _, source := range sources {
		for _, id := range documentIDs(source) {
			doc := source.Documents[id]
			stats.Total++

			_, existed := dest.Documents[id]
			opts := domain.WriteOptions{VersionType: req.VersionType}
			if req.VersionType == domain.VersionTypeExternal {
				opts.Version = doc.Version
			}

			if _, err := writeDocument(dest, id, doc.Source, opts); err != nil {
				if _, conflict := err.(*VersionConflictError); conflict {
					stats.VersionConflicts++
					continue
				}
				return nil, err
			}

			if existed {
				stats.Updated++
			} else {
				stats.Created++
			}
		}
	}

	if stats.Created > 0 || stats.Updated > 0 {
		e.markDirty()
	}
	stats.TookMillis = time.Since(start).Milliseconds()
	return stats, nil
}
