package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// AliasesEntry is one index in the GET /_aliases response
type AliasesEntry struct {
	Aliases map[string]struct{} `json:"aliases"`
}

// UpdateAliasesRequest is the body of POST /_aliases
type UpdateAliasesRequest struct {
	Actions []domain.AliasAction `json:"actions"`
}

// HandleGetAliases lists every index with the aliases bound to it
func (h *Handler) HandleGetAliases(w http.ResponseWriter, r *http.Request) {
	aliasMap := h.engine.ListAliases()

	response := make(map[string]AliasesEntry, len(aliasMap))
	for index, aliases := range aliasMap {
		entry := AliasesEntry{Aliases: make(map[string]struct{}, len(aliases))}
		for _, alias := range aliases {
			entry.Aliases[alias] = struct{}{}
		}
		response[index] = entry
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleUpdateAliases applies a batch of alias actions atomically
func (h *Handler) HandleUpdateAliases(w http.ResponseWriter, r *http.Request) {
	var req UpdateAliasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding alias actions failed: %v", err)
		writeParseError(w, err)
		return
	}

	if err := h.engine.UpdateAliases(req.Actions); err != nil {
		log.Printf("ERROR: Alias update with %d actions failed: %v", len(req.Actions), err)
		WriteEngineError(w, err)
		return
	}

	log.Printf("INFO: Applied %d alias actions", len(req.Actions))
	writeJSON(w, http.StatusOK, engine.AcknowledgedResponse())
}
