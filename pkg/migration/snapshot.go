package migration

import (
	"context"
	"sort"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Snapshot is the point-in-time view of the engine's index and alias namespace
// that every migration decision is made against. It is read once and never
// refreshed, so all checks share the same view of the engine.
type Snapshot struct {
	aliases domain.AliasMap
	taken   map[string]struct{}
}

// NewSnapshot builds a snapshot from an alias map. The map is copied.
func NewSnapshot(aliasMap domain.AliasMap) *Snapshot {
	s := &Snapshot{
		aliases: make(domain.AliasMap, len(aliasMap)),
		taken:   make(map[string]struct{}),
	}
	for index, aliases := range aliasMap {
		copied := append([]string(nil), aliases...)
		sort.Strings(copied)
		s.aliases[index] = copied

		s.taken[index] = struct{}{}
		for _, alias := range aliases {
			s.taken[alias] = struct{}{}
		}
	}
	return s
}

// TakeSnapshot reads the alias map from the engine
func TakeSnapshot(ctx context.Context, client domain.EngineClient) (*Snapshot, error) {
	aliasMap, err := client.ListAliases(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(aliasMap), nil
}

// AliasMap returns a copy of the snapshot contents
func (s *Snapshot) AliasMap() domain.AliasMap {
	copied := make(domain.AliasMap, len(s.aliases))
	for index, aliases := range s.aliases {
		copied[index] = append([]string(nil), aliases...)
	}
	return copied
}

// HasIndex reports whether an index with the given name exists
func (s *Snapshot) HasIndex(name string) bool {
	_, exists := s.aliases[name]
	return exists
}

// Taken reports whether name is used by any index or alias
func (s *Snapshot) Taken(name string) bool {
	_, taken := s.taken[name]
	return taken
}

// IndicesWithAlias returns the indices the alias is bound to, in lexical order
func (s *Snapshot) IndicesWithAlias(alias string) []string {
	return s.aliases.IndicesFor(alias)
}

// Generations returns the generation numbers of the indices bound to alias
// whose names parse under prefix, highest first. Bound indices that do not
// parse are ignored.
func (s *Snapshot) Generations(alias, prefix string) []int {
	var versions []int
	for _, index := range s.IndicesWithAlias(alias) {
		if version, ok := ParseGeneration(prefix, index); ok {
			versions = append(versions, version)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions
}

// AliasCollides reports whether alias cannot be used as the migration alias:
// it is the name of an index, or it is bound to an index that is not one of
// its own generations under prefix.
func (s *Snapshot) AliasCollides(alias, prefix string) bool {
	if !s.Taken(alias) {
		return false
	}
	if s.HasIndex(alias) {
		return true
	}
	for _, index := range s.IndicesWithAlias(alias) {
		if _, ok := ParseGeneration(prefix, index); !ok {
			return true
		}
	}
	return false
}
