package engine

import (
	"sort"
	"strings"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

const invalidNameChars = `\/*?"<>| ,#:`

// validateName applies the engine's naming rules shared by indices and aliases
func validateName(name string) string {
	switch {
	case name == "":
		return "must not be empty"
	case name == "." || name == "..":
		return "must not be '.' or '..'"
	case strings.ToLower(name) != name:
		return "must be lowercase"
	case strings.ContainsAny(name, invalidNameChars):
		return "must not contain the following characters " + invalidNameChars
	case strings.HasPrefix(name, "_") || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "+"):
		return "must not start with '_', '-', or '+'"
	}
	return ""
}

// CreateIndex creates a new index with the given body
func (e *Engine) CreateIndex(name string, body domain.IndexBody) error {
	if reason := validateName(name); reason != "" {
		return &InvalidIndexNameError{Index: name, Reason: reason}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indices[name]; exists {
		return &IndexExistsError{Index: name}
	}
	if len(e.aliasTargets(name)) > 0 {
		return &InvalidIndexNameError{Index: name, Reason: "already exists as alias"}
	}

	e.indices[name] = newIndex(name, body)
	e.markDirty()
	return nil
}

// DeleteIndex removes an index together with its alias bindings.
// Only concrete index names are accepted, never aliases.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indices[name]; !exists {
		return &IndexNotFoundError{Index: name}
	}

	delete(e.indices, name)
	e.markDirty()
	return nil
}

// GetIndex describes the index, or every index behind the alias, with the given name
func (e *Engine) GetIndex(name string) ([]domain.IndexInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	indices, err := e.resolve(name)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.IndexInfo, 0, len(indices))
	for _, index := range indices {
		infos = append(infos, domain.IndexInfo{
			Name:          index.Name,
			Aliases:       sortedKeys(index.Aliases),
			Body:          index.Body,
			DocumentCount: int64(len(index.Documents)),
		})
	}
	return infos, nil
}

// aliasTargets returns the names of the indices the alias is bound to (caller must hold mu)
func (e *Engine) aliasTargets(alias string) []string {
	var targets []string
	for name, index := range e.indices {
		if _, bound := index.Aliases[alias]; bound {
			targets = append(targets, name)
		}
	}
	sort.Strings(targets)
	return targets
}

// resolve returns the index with the given name, or the indices behind the alias (caller must hold mu)
func (e *Engine) resolve(name string) ([]*Index, error) {
	if index, exists := e.indices[name]; exists {
		return []*Index{index}, nil
	}

	targets := e.aliasTargets(name)
	if len(targets) == 0 {
		return nil, &IndexNotFoundError{Index: name}
	}

	indices := make([]*Index, 0, len(targets))
	for _, target := range targets {
		indices = append(indices, e.indices[target])
	}
	return indices, nil
}

// resolveWriteIndex resolves a name that must point at exactly one index (caller must hold mu)
func (e *Engine) resolveWriteIndex(name string) (*Index, error) {
	indices, err := e.resolve(name)
	if err != nil {
		return nil, err
	}
	if len(indices) > 1 {
		return nil, &IllegalArgumentError{
			Reason: "no write index is defined for alias [" + name + "]. The write index may be explicitly disabled using is_write_index=false or the alias points to multiple indices without one being designated as a write index",
		}
	}
	return indices[0], nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
