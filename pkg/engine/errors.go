package engine

import (
	"fmt"
	"net/http"
)

// Error is implemented by every engine error so transports can render
// it the way Elasticsearch does
type Error interface {
	error
	ErrorType() string
	StatusCode() int
}

// IndexExistsError is returned when creating an index whose name is taken
type IndexExistsError struct {
	Index string
}

func (e *IndexExistsError) Error() string {
	return fmt.Sprintf("index [%s] already exists", e.Index)
}
func (e *IndexExistsError) ErrorType() string { return "resource_already_exists_exception" }
func (e *IndexExistsError) StatusCode() int   { return http.StatusBadRequest }

// InvalidIndexNameError is returned for malformed index names or names already used by an alias
type InvalidIndexNameError struct {
	Index  string
	Reason string
}

func (e *InvalidIndexNameError) Error() string {
	return fmt.Sprintf("Invalid index name [%s], %s", e.Index, e.Reason)
}
func (e *InvalidIndexNameError) ErrorType() string { return "invalid_index_name_exception" }
func (e *InvalidIndexNameError) StatusCode() int   { return http.StatusBadRequest }

// InvalidAliasNameError is returned when an alias would shadow an index
type InvalidAliasNameError struct {
	Alias  string
	Reason string
}

func (e *InvalidAliasNameError) Error() string {
	return fmt.Sprintf("Invalid alias name [%s]: %s", e.Alias, e.Reason)
}
func (e *InvalidAliasNameError) ErrorType() string { return "invalid_alias_name_exception" }
func (e *InvalidAliasNameError) StatusCode() int   { return http.StatusBadRequest }

// IndexNotFoundError is returned when a name resolves to no index
type IndexNotFoundError struct {
	Index string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("no such index [%s]", e.Index)
}
func (e *IndexNotFoundError) ErrorType() string { return "index_not_found_exception" }
func (e *IndexNotFoundError) StatusCode() int   { return http.StatusNotFound }

// AliasNotFoundError is returned when removing an alias that is not bound to the index
type AliasNotFoundError struct {
	Alias string
	Index string
}

func (e *AliasNotFoundError) Error() string {
	return fmt.Sprintf("aliases [%s] missing on index [%s]", e.Alias, e.Index)
}
func (e *AliasNotFoundError) ErrorType() string { return "aliases_not_found_exception" }
func (e *AliasNotFoundError) StatusCode() int   { return http.StatusNotFound }

// DocumentNotFoundError is returned when reading a missing document
type DocumentNotFoundError struct {
	Index string
	ID    string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("[%s]: document missing in index [%s]", e.ID, e.Index)
}
func (e *DocumentNotFoundError) ErrorType() string { return "document_missing_exception" }
func (e *DocumentNotFoundError) StatusCode() int   { return http.StatusNotFound }

// VersionConflictError is returned when an external version is not greater than the stored one
type VersionConflictError struct {
	Index    string
	ID       string
	Current  int64
	Provided int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("[%s]: version conflict, current version [%d] is higher or equal to the one provided [%d]",
		e.ID, e.Current, e.Provided)
}
func (e *VersionConflictError) ErrorType() string { return "version_conflict_engine_exception" }
func (e *VersionConflictError) StatusCode() int   { return http.StatusConflict }

// IllegalArgumentError is returned for malformed requests
type IllegalArgumentError struct {
	Reason string
}

func (e *IllegalArgumentError) Error() string     { return e.Reason }
func (e *IllegalArgumentError) ErrorType() string { return "illegal_argument_exception" }
func (e *IllegalArgumentError) StatusCode() int   { return http.StatusBadRequest }
