package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// serve routes a single request through a router built around the mock engine
func serve(t *testing.T, mockEngine *MockSearchEngine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reader = &bytes.Buffer{}
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	router := mux.NewRouter()
	NewHandler(mockEngine).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

func TestHandler_HandleGetAliases(t *testing.T) {
	mockEngine := NewMockSearchEngine()
	mockEngine.Aliases = domain.AliasMap{
		"users__v1": {},
		"users__v2": {"users", "people"},
	}

	w := serve(t, mockEngine, "GET", "/_aliases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Len(t, response, 2)
	assert.Empty(t, response["users__v1"]["aliases"])
	assert.Contains(t, response["users__v2"]["aliases"], "users")
	assert.Contains(t, response["users__v2"]["aliases"], "people")
}

func TestHandler_HandleUpdateAliases(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		engineErr      error
		expectedStatus int
		expectedType   string
		expectedCalls  int
	}{
		{
			name: "swap",
			body: UpdateAliasesRequest{Actions: []domain.AliasAction{
				domain.RemoveAlias("users__v1", "users"),
				domain.AddAlias("users__v2", "users"),
			}},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "malformed body",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedType:   "parse_exception",
		},
		{
			name:           "missing index",
			body:           UpdateAliasesRequest{Actions: []domain.AliasAction{domain.AddAlias("missing", "users")}},
			engineErr:      &engine.IndexNotFoundError{Index: "missing"},
			expectedStatus: http.StatusNotFound,
			expectedType:   "index_not_found_exception",
			expectedCalls:  1,
		},
		{
			name:           "alias not bound",
			body:           UpdateAliasesRequest{Actions: []domain.AliasAction{domain.RemoveAlias("users__v1", "users")}},
			engineErr:      &engine.AliasNotFoundError{Alias: "users", Index: "users__v1"},
			expectedStatus: http.StatusNotFound,
			expectedType:   "aliases_not_found_exception",
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEngine := NewMockSearchEngine()
			mockEngine.Err = tt.engineErr

			w := serve(t, mockEngine, "POST", "/_aliases", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, mockEngine.GetUpdateCalls())

			if tt.expectedType != "" {
				response := decodeError(t, w)
				assert.Equal(t, tt.expectedType, response.Error.Type)
				assert.Equal(t, tt.expectedStatus, response.Status)
				return
			}

			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, true, response["acknowledged"])
			require.Len(t, mockEngine.LastActions, 2)
			assert.Equal(t, "users__v1", mockEngine.LastActions[0].Remove.Index)
			assert.Equal(t, "users__v2", mockEngine.LastActions[1].Add.Index)
		})
	}
}

func TestHandler_HandleReindex(t *testing.T) {
	mockEngine := NewMockSearchEngine()
	mockEngine.Stats = &domain.ReindexStats{Total: 3, Created: 2, VersionConflicts: 1}

	body := map[string]interface{}{
		"source": map[string]interface{}{"index": "users__v1"},
		"dest":   map[string]interface{}{"index": "users__v2", "version_type": "external"},
	}
	w := serve(t, mockEngine, "POST", "/_reindex", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockEngine.GetReindexCalls())
	assert.Equal(t, domain.ReindexRequest{
		Source:      "users__v1",
		Dest:        "users__v2",
		VersionType: domain.VersionTypeExternal,
	}, mockEngine.LastReindex)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(3), response["total"])
	assert.Equal(t, float64(2), response["created"])
	assert.Equal(t, float64(1), response["version_conflicts"])
	assert.Equal(t, false, response["timed_out"])
}

func TestHandler_HandleReindex_SameIndex(t *testing.T) {
	mockEngine := NewMockSearchEngine()
	mockEngine.Err = &engine.IllegalArgumentError{Reason: "reindex cannot write into an index its reading from [users__v1]"}

	body := map[string]interface{}{
		"source": map[string]interface{}{"index": "users__v1"},
		"dest":   map[string]interface{}{"index": "users__v1"},
	}
	w := serve(t, mockEngine, "POST", "/_reindex", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "illegal_argument_exception", decodeError(t, w).Error.Type)
}

func TestHandler_HandleCreateIndex(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		engineErr      error
		expectedStatus int
		expectedType   string
	}{
		{
			name: "with mappings",
			body: map[string]interface{}{
				"mappings": map[string]interface{}{"properties": map[string]interface{}{}},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "without body",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "already exists",
			engineErr:      &engine.IndexExistsError{Index: "users__v1"},
			expectedStatus: http.StatusBadRequest,
			expectedType:   "resource_already_exists_exception",
		},
		{
			name:           "invalid name",
			engineErr:      &engine.InvalidIndexNameError{Index: "users__v1", Reason: "must be lowercase"},
			expectedStatus: http.StatusBadRequest,
			expectedType:   "invalid_index_name_exception",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEngine := NewMockSearchEngine()
			mockEngine.Err = tt.engineErr

			w := serve(t, mockEngine, "PUT", "/users__v1", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, 1, mockEngine.GetCreateCalls())

			if tt.expectedType != "" {
				assert.Equal(t, tt.expectedType, decodeError(t, w).Error.Type)
				return
			}

			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, true, response["acknowledged"])
			assert.Equal(t, "users__v1", response["index"])
		})
	}
}

func TestHandler_HandlePutDocument(t *testing.T) {
	mockEngine := NewMockSearchEngine()

	w := serve(t, mockEngine, "PUT", "/users/_doc/1", map[string]interface{}{"name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	var response DocumentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "created", response.Result)
	assert.Equal(t, int64(1), response.Version)

	w = serve(t, mockEngine, "PUT", "/users/_doc/1?version=7&version_type=external", map[string]interface{}{"name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.WriteOptions{Version: 7, VersionType: domain.VersionTypeExternal}, mockEngine.LastWrite)

	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "updated", response.Result)
}

func TestHandler_HandlePutDocument_BadVersion(t *testing.T) {
	mockEngine := NewMockSearchEngine()

	w := serve(t, mockEngine, "PUT", "/users/_doc/1?version=seven", map[string]interface{}{"name": "Alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "illegal_argument_exception", decodeError(t, w).Error.Type)
}

func TestHandler_HandleGetDocument_Missing(t *testing.T) {
	mockEngine := NewMockSearchEngine()
	mockEngine.Err = &engine.DocumentNotFoundError{Index: "users__v1", ID: "42"}

	w := serve(t, mockEngine, "GET", "/users/_doc/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var response DocumentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "users__v1", response.Index)
	require.NotNil(t, response.Found)
	assert.False(t, *response.Found)
}

func TestHandler_HandleHealth(t *testing.T) {
	mockEngine := NewMockSearchEngine()
	mockEngine.Aliases = domain.AliasMap{"users__v1": {"users"}}

	w := serve(t, mockEngine, "GET", "/_cluster/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "green", response.Status)
	assert.Equal(t, 1, response.NumberOfIndices)
}

func TestWriteEngineError_Unclassified(t *testing.T) {
	w := httptest.NewRecorder()
	WriteEngineError(w, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeError(t, w)
	assert.Equal(t, "exception", response.Error.Type)
	assert.Equal(t, assert.AnError.Error(), response.Error.Reason)
}
