package migration

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below via errors.Is
var (
	ErrIndexAlreadyExists = errors.New("index already exists")
	ErrInvalidAliasName   = errors.New("invalid alias name")
	ErrIndexNotFound      = errors.New("index not found")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// IndexAlreadyExistsError is returned when the target index of a migration is
// already taken, or when the replaced and target generations coincide
type IndexAlreadyExistsError struct {
	Index string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index %s already exists", e.Index)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// InvalidAliasNameError is returned when the alias collides with an existing index or alias
type InvalidAliasNameError struct {
	Alias string
}

func (e *InvalidAliasNameError) Error() string {
	return fmt.Sprintf("unable to create the alias with name '%s' because other index or alias with the same name already exists", e.Alias)
}

func (e *InvalidAliasNameError) Is(target error) bool {
	return target == ErrInvalidAliasName
}

// IndexNotFoundError is returned when an explicitly replaced generation is not live behind the alias
type IndexNotFoundError struct {
	Index   string
	Version int
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index %s was not found", e.Index)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}
