package engine

import (
	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// ListAliases returns every index with the aliases bound to it.
// Indices without aliases are listed with an empty slice.
func (e *Engine) ListAliases() domain.AliasMap {
	e.mu.RLock()
	defer e.mu.RUnlock()

	aliases := make(domain.AliasMap, len(e.indices))
	for name, index := range e.indices {
		aliases[name] = sortedKeys(index.Aliases)
	}
	return aliases
}

// UpdateAliases applies a batch of alias actions atomically: every action is
// validated against the state produced by the actions before it, and the
// batch is committed only if all of them succeed.
func (e *Engine) UpdateAliases(actions []domain.AliasAction) error {
	if len(actions) == 0 {
		return &IllegalArgumentError{Reason: "[actions] is required"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Stage alias sets for the touched indices
	staged := make(map[string]map[string]struct{})
	stagedAliases := func(index *Index) map[string]struct{} {
		if set, ok := staged[index.Name]; ok {
			return set
		}
		set := make(map[string]struct{}, len(index.Aliases))
		for alias := range index.Aliases {
			set[alias] = struct{}{}
		}
		staged[index.Name] = set
		return set
	}

	for _, action := range actions {
		switch {
		case action.Add != nil && action.Remove == nil:
			target := action.Add
			index, exists := e.indices[target.Index]
			if !exists {
				return &IndexNotFoundError{Index: target.Index}
			}
			if reason := validateName(target.Alias); reason != "" {
				return &InvalidAliasNameError{Alias: target.Alias, Reason: reason}
			}
			if _, clash := e.indices[target.Alias]; clash {
				return &InvalidAliasNameError{Alias: target.Alias, Reason: "an index or data stream exists with the same name as the alias"}
			}
			stagedAliases(index)[target.Alias] = struct{}{}

		case action.Remove != nil && action.Add == nil:
			target := action.Remove
			index, exists := e.indices[target.Index]
			if !exists {
				return &IndexNotFoundError{Index: target.Index}
			}
			set := stagedAliases(index)
			if _, bound := set[target.Alias]; !bound {
				return &AliasNotFoundError{Alias: target.Alias, Index: target.Index}
			}
			delete(set, target.Alias)

		default:
			return &IllegalArgumentError{Reason: "alias action must contain exactly one of [add, remove]"}
		}
	}

	for name, set := range staged {
		e.indices[name].Aliases = set
	}
	e.markDirty()
	return nil
}
