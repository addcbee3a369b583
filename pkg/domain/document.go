package domain

// Document represents the source of a document stored in an index
type Document map[string]interface{}

// IndexBody is the opaque mapping/settings payload used to create an index.
// It is passed through to the engine verbatim.
type IndexBody map[string]interface{}

// Response is a raw, decoded engine response
type Response map[string]interface{}

// Version types understood by document writes and reindexing
const (
	VersionTypeInternal = "internal"
	VersionTypeExternal = "external"
)

// StoredDocument is a document together with its engine metadata
type StoredDocument struct {
	Index   string   `json:"_index" msgpack:"index"`
	ID      string   `json:"_id" msgpack:"id"`
	Version int64    `json:"_version" msgpack:"version"`
	Source  Document `json:"_source" msgpack:"source"`
}

// WriteOptions controls how a document write treats versions.
// A zero Version with the internal version type lets the engine assign one.
type WriteOptions struct {
	Version     int64
	VersionType string
}
