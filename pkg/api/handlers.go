package api

import (
	"encoding/json"
	"net/http"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Handler provides HTTP handlers for the engine's REST API
type Handler struct {
	engine domain.SearchEngine
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(engine domain.SearchEngine) *Handler {
	return &Handler{
		engine: engine,
	}
}

// writeJSON writes a JSON body with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
