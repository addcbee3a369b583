package engine

import "github.com/adfharrison1/go-esmigrate/pkg/domain"

// CreateIndexResponse is the acknowledgement returned for a created index
func CreateIndexResponse(name string) domain.Response {
	return domain.Response{
		"acknowledged":        true,
		"shards_acknowledged": true,
		"index":               name,
	}
}

// AcknowledgedResponse is the acknowledgement returned for namespace updates
func AcknowledgedResponse() domain.Response {
	return domain.Response{"acknowledged": true}
}

// ReindexResponse renders reindex statistics the way the REST surface reports them
func ReindexResponse(stats *domain.ReindexStats) domain.Response {
	return domain.Response{
		"took":              stats.TookMillis,
		"timed_out":         false,
		"total":             stats.Total,
		"created":           stats.Created,
		"updated":           stats.Updated,
		"version_conflicts": stats.VersionConflicts,
		"failures":          []interface{}{},
	}
}
