package domain

import "sort"

// AliasMap maps every existing index name to the alias names bound to it
type AliasMap map[string][]string

// IndexNames returns the index names in lexical order
func (am AliasMap) IndexNames() []string {
	names := make([]string, 0, len(am))
	for name := range am {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IndicesFor returns the indices the given alias is bound to, in lexical order
func (am AliasMap) IndicesFor(alias string) []string {
	var indices []string
	for index, aliases := range am {
		for _, a := range aliases {
			if a == alias {
				indices = append(indices, index)
				break
			}
		}
	}
	sort.Strings(indices)
	return indices
}

// AliasTarget names one index/alias binding
type AliasTarget struct {
	Index string `json:"index"`
	Alias string `json:"alias"`
}

// AliasAction is a single entry of an alias update batch.
// Exactly one of Add or Remove is set.
type AliasAction struct {
	Add    *AliasTarget `json:"add,omitempty"`
	Remove *AliasTarget `json:"remove,omitempty"`
}

// AddAlias builds an action binding alias to index
func AddAlias(index, alias string) AliasAction {
	return AliasAction{Add: &AliasTarget{Index: index, Alias: alias}}
}

// RemoveAlias builds an action unbinding alias from index
func RemoveAlias(index, alias string) AliasAction {
	return AliasAction{Remove: &AliasTarget{Index: index, Alias: alias}}
}
