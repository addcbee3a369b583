package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router.
// Routes starting with an underscore are registered before the index routes
// so that they are never taken for index names.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Cluster
	router.HandleFunc("/_cluster/health", h.HandleHealth).Methods("GET")

	// Namespace operations
	router.HandleFunc("/_aliases", h.HandleGetAliases).Methods("GET")
	router.HandleFunc("/_aliases", h.HandleUpdateAliases).Methods("POST")
	router.HandleFunc("/_reindex", h.HandleReindex).Methods("POST")

	// Document operations
	router.HandleFunc("/{index}/_doc/{id}", h.HandlePutDocument).Methods("PUT", "POST")
	router.HandleFunc("/{index}/_doc/{id}", h.HandleGetDocument).Methods("GET")
	router.HandleFunc("/{index}/_search", h.HandleSearch).Methods("GET", "POST")

	// Index operations
	router.HandleFunc("/{index}", h.HandleCreateIndex).Methods("PUT")
	router.HandleFunc("/{index}", h.HandleGetIndex).Methods("GET")
	router.HandleFunc("/{index}", h.HandleDeleteIndex).Methods("DELETE")
}
