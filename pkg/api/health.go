package api

import (
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	ClusterName     string                 `json:"cluster_name"`
	Status          string                 `json:"status"`
	NumberOfIndices int                    `json:"number_of_indices"`
	Stats           map[string]interface{} `json:"stats"`
}

// HandleHealth handles GET requests to the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.GetMemoryStats()

	response := HealthResponse{
		ClusterName:     "go-esmigrate",
		Status:          "green",
		NumberOfIndices: len(h.engine.ListAliases()),
		Stats:           stats,
	}

	writeJSON(w, http.StatusOK, response)
}
