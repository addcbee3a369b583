package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// ReindexRequest is the body of POST /_reindex
type ReindexRequest struct {
	Source struct {
		Index string `json:"index"`
	} `json:"source"`
	Dest struct {
		Index       string `json:"index"`
		VersionType string `json:"version_type,omitempty"`
	} `json:"dest"`
}

// HandleReindex copies every document from the source index into the destination
func (h *Handler) HandleReindex(w http.ResponseWriter, r *http.Request) {
	var req ReindexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding reindex request failed: %v", err)
		writeParseError(w, err)
		return
	}

	stats, err := h.engine.Reindex(domain.ReindexRequest{
		Source:      req.Source.Index,
		Dest:        req.Dest.Index,
		VersionType: req.Dest.VersionType,
	})
	if err != nil {
		log.Printf("ERROR: Reindex '%s' -> '%s' failed: %v", req.Source.Index, req.Dest.Index, err)
		WriteEngineError(w, err)
		return
	}

	log.Printf("INFO: Reindexed %d documents from '%s' into '%s' (%d version conflicts)",
		stats.Created+stats.Updated, req.Source.Index, req.Dest.Index, stats.VersionConflicts)
	writeJSON(w, http.StatusOK, engine.ReindexResponse(stats))
}
