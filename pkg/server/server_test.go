package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-esmigrate/pkg/api"
	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

func TestServer_UnknownRoutes(t *testing.T) {
	srv := NewServer()
	defer srv.StopBackgroundWorkers()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedType   string
	}{
		{"no handler", "GET", "/users/_doc/1/extra", http.StatusNotFound, "no_handler_found_exception"},
		{"method not allowed", "PATCH", "/_aliases", http.StatusMethodNotAllowed, "method_not_allowed_exception"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var response api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedType, response.Error.Type)
			assert.Equal(t, tt.expectedStatus, response.Status)
		})
	}
}

func TestServer_InitAndSaveDB(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data"+engine.FileExtension)

	srv := NewServer(engine.WithDataFile(dataFile))
	srv.InitDB(dataFile)
	require.NoError(t, srv.Engine().CreateIndex("users__v1", nil))
	require.NoError(t, srv.Engine().UpdateAliases([]domain.AliasAction{domain.AddAlias("users__v1", "users")}))
	srv.SaveDB(dataFile)
	srv.StopBackgroundWorkers()

	restarted := NewServer(engine.WithDataFile(dataFile))
	defer restarted.StopBackgroundWorkers()
	restarted.InitDB(dataFile)

	w := httptest.NewRecorder()
	restarted.Router().ServeHTTP(w, httptest.NewRequest("GET", "/_aliases", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]api.AliasesEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["users__v1"].Aliases, "users")
}
