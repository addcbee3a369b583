package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// HandleCreateIndex creates an index; the body (mappings, settings) is optional and stored as is
func (h *Handler) HandleCreateIndex(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]

	body := domain.IndexBody{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		log.Printf("ERROR: Decoding body for index '%s' failed: %v", name, err)
		writeParseError(w, err)
		return
	}

	if err := h.engine.CreateIndex(name, body); err != nil {
		log.Printf("ERROR: Creating index '%s' failed: %v", name, err)
		WriteEngineError(w, err)
		return
	}

	log.Printf("INFO: Created index '%s'", name)
	writeJSON(w, http.StatusOK, engine.CreateIndexResponse(name))
}

// HandleGetIndex describes the index, or the indices behind the alias, with the given name
func (h *Handler) HandleGetIndex(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]

	infos, err := h.engine.GetIndex(name)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	response := make(map[string]map[string]interface{}, len(infos))
	for _, info := range infos {
		entry := make(map[string]interface{}, len(info.Body)+2)
		for k, v := range info.Body {
			entry[k] = v
		}
		aliases := make(map[string]struct{}, len(info.Aliases))
		for _, alias := range info.Aliases {
			aliases[alias] = struct{}{}
		}
		entry["aliases"] = aliases
		entry["docs_count"] = info.DocumentCount
		response[info.Name] = entry
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleDeleteIndex deletes an index by its concrete name
func (h *Handler) HandleDeleteIndex(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["index"]

	if err := h.engine.DeleteIndex(name); err != nil {
		log.Printf("ERROR: Deleting index '%s' failed: %v", name, err)
		WriteEngineError(w, err)
		return
	}

	log.Printf("INFO: Deleted index '%s'", name)
	writeJSON(w, http.StatusOK, engine.AcknowledgedResponse())
}
