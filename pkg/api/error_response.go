package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// ErrorCause is the "error" object of an error response
type ErrorCause struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// ErrorResponse represents the Elasticsearch error envelope
type ErrorResponse struct {
	Error  ErrorCause `json:"error"`
	Status int        `json:"status"`
}

// WriteJSONError writes an error envelope with the given status code, type and reason
func WriteJSONError(w http.ResponseWriter, statusCode int, errType, reason string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error: ErrorCause{
			Type:   errType,
			Reason: reason,
		},
		Status: statusCode,
	})
}

// WriteEngineError renders err with the status and type the engine assigned to it.
// Errors the engine did not classify are reported as 500.
func WriteEngineError(w http.ResponseWriter, err error) {
	var engineErr engine.Error
	if errors.As(err, &engineErr) {
		WriteJSONError(w, engineErr.StatusCode(), engineErr.ErrorType(), engineErr.Error())
		return
	}

	log.Printf("ERROR: Unclassified engine error: %v", err)
	WriteJSONError(w, http.StatusInternalServerError, "exception", err.Error())
}

// writeParseError reports a request body that could not be decoded
func writeParseError(w http.ResponseWriter, err error) {
	WriteJSONError(w, http.StatusBadRequest, "parse_exception", "request body is required to be valid JSON: "+err.Error())
}
