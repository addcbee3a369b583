package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// DocumentResponse describes a written or read document
type DocumentResponse struct {
	Index   string          `json:"_index"`
	ID      string          `json:"_id"`
	Version int64           `json:"_version,omitempty"`
	Result  string          `json:"result,omitempty"`
	Found   *bool           `json:"found,omitempty"`
	Source  domain.Document `json:"_source,omitempty"`
}

// SearchHits is the "hits" object of a search response
type SearchHits struct {
	Total struct {
		Value    int    `json:"value"`
		Relation string `json:"relation"`
	} `json:"total"`
	Hits []DocumentResponse `json:"hits"`
}

// SearchResponse is the body of a search response
type SearchResponse struct {
	Took     int64      `json:"took"`
	TimedOut bool       `json:"timed_out"`
	Hits     SearchHits `json:"hits"`
}

// HandlePutDocument writes a document; ?version= and ?version_type= select versioning
func (h *Handler) HandlePutDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	target, id := vars["index"], vars["id"]

	opts := domain.WriteOptions{VersionType: r.URL.Query().Get("version_type")}
	if raw := r.URL.Query().Get("version"); raw != "" {
		version, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "illegal_argument_exception", "failed to parse [version]: "+raw)
			return
		}
		opts.Version = version
	}

	var source domain.Document
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		writeParseError(w, err)
		return
	}

	stored, created, err := h.engine.IndexDocument(target, id, source, opts)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	status, result := http.StatusOK, "updated"
	if created {
		status, result = http.StatusCreated, "created"
	}
	writeJSON(w, status, DocumentResponse{
		Index:   stored.Index,
		ID:      stored.ID,
		Version: stored.Version,
		Result:  result,
	})
}

// HandleGetDocument reads a document by id
func (h *Handler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	target, id := vars["index"], vars["id"]

	stored, err := h.engine.GetDocument(target, id)
	if err != nil {
		var missing *engine.DocumentNotFoundError
		if errors.As(err, &missing) {
			found := false
			writeJSON(w, http.StatusNotFound, DocumentResponse{Index: missing.Index, ID: id, Found: &found})
			return
		}
		WriteEngineError(w, err)
		return
	}

	found := true
	writeJSON(w, http.StatusOK, DocumentResponse{
		Index:   stored.Index,
		ID:      stored.ID,
		Version: stored.Version,
		Found:   &found,
		Source:  stored.Source,
	})
}

// HandleSearch returns every document of the indices the target resolves to
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["index"]

	docs, err := h.engine.Search(target)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	var response SearchResponse
	response.Hits.Total.Value = len(docs)
	response.Hits.Total.Relation = "eq"
	response.Hits.Hits = make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response.Hits.Hits = append(response.Hits.Hits, DocumentResponse{
			Index:   doc.Index,
			ID:      doc.ID,
			Version: doc.Version,
			Source:  doc.Source,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
