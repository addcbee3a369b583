package domain

import "context"

// ReindexRequest describes a bulk copy of every document from Source into Dest
type ReindexRequest struct {
	Source      string `json:"source"`
	Dest        string `json:"dest"`
	VersionType string `json:"version_type,omitempty"`
}

// ReindexStats summarises a completed reindex
type ReindexStats struct {
	Total            int64 `json:"total"`
	Created          int64 `json:"created"`
	Updated          int64 `json:"updated"`
	VersionConflicts int64 `json:"version_conflicts"`
	TookMillis       int64 `json:"took"`
}

// EngineClient is the view of a search engine the migration planner needs.
// Implementations must apply UpdateAliases as one atomic batch and must fail
// CreateIndex when the name is already taken.
type EngineClient interface {
	ListAliases(ctx context.Context) (AliasMap, error)
	CreateIndex(ctx context.Context, name string, body IndexBody) (Response, error)
	Reindex(ctx context.Context, req ReindexRequest) (Response, error)
	UpdateAliases(ctx context.Context, actions []AliasAction) (Response, error)
}

// IndexInfo describes one physical index
type IndexInfo struct {
	Name          string    `json:"name"`
	Aliases       []string  `json:"aliases"`
	Body          IndexBody `json:"body"`
	DocumentCount int64     `json:"document_count"`
}

// SearchEngine defines the operations served by the engine's REST surface
type SearchEngine interface {
	CreateIndex(name string, body IndexBody) error
	DeleteIndex(name string) error
	GetIndex(name string) ([]IndexInfo, error)
	ListAliases() AliasMap
	UpdateAliases(actions []AliasAction) error
	Reindex(req ReindexRequest) (*ReindexStats, error)
	IndexDocument(target, id string, source Document, opts WriteOptions) (*StoredDocument, bool, error)
	GetDocument(target, id string) (*StoredDocument, error)
	Search(target string) ([]StoredDocument, error)
	GetMemoryStats() map[string]interface{}
}
