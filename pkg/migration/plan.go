package migration

import (
	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Params are the inputs of a migration decision
type Params struct {
	Alias  string
	Prefix string

	// Version is the explicit target version; zero selects the next generation
	Version int

	// ReplacedVersion, when set, names the live generation to replace instead
	// of the highest one
	ReplacedVersion *int

	// Reindex copies the replaced generation into the target
	Reindex bool
}

// Plan is the outcome of a migration decision: everything the planner will
// send to the engine, computed before any of it is sent
type Plan struct {
	Alias           string               `json:"alias"`
	Index           string               `json:"index"`
	Version         int                  `json:"version"`
	ReplacedIndex   string               `json:"replaced_index,omitempty"`
	ReplacedVersion int                  `json:"replaced_version,omitempty"`
	LiveVersions    []int                `json:"live_versions"`
	Reindex         bool                 `json:"reindex"`
	Actions         []domain.AliasAction `json:"actions"`
}

// ReindexRequest returns the copy from the replaced generation into the target.
// Source versions are preserved.
func (p *Plan) ReindexRequest() domain.ReindexRequest {
	return domain.ReindexRequest{
		Source:      p.ReplacedIndex,
		Dest:        p.Index,
		VersionType: domain.VersionTypeExternal,
	}
}

// Decide computes a migration plan against the snapshot. It has no side effects.
func Decide(snapshot *Snapshot, params Params) (*Plan, error) {
	if params.Version > 0 && snapshot.HasIndex(IndexName(params.Prefix, params.Version)) {
		return nil, &IndexAlreadyExistsError{Index: IndexName(params.Prefix, params.Version)}
	}

	if snapshot.AliasCollides(params.Alias, params.Prefix) {
		return nil, &InvalidAliasNameError{Alias: params.Alias}
	}

	live := snapshot.Generations(params.Alias, params.Prefix)

	version := params.Version
	if version == 0 {
		version = 1
		if len(live) > 0 {
			version = live[0] + 1
		}
	}
	index := IndexName(params.Prefix, version)

	plan := &Plan{
		Alias:        params.Alias,
		Index:        index,
		Version:      version,
		LiveVersions: live,
	}

	switch {
	case params.ReplacedVersion != nil:
		replaced := *params.ReplacedVersion
		if !containsVersion(live, replaced) {
			return nil, &IndexNotFoundError{Index: IndexName(params.Prefix, replaced), Version: replaced}
		}
		plan.ReplacedVersion = replaced
		plan.ReplacedIndex = IndexName(params.Prefix, replaced)
	case len(live) > 0:
		plan.ReplacedVersion = live[0]
		plan.ReplacedIndex = IndexName(params.Prefix, live[0])
	}

	if plan.ReplacedIndex == index {
		return nil, &IndexAlreadyExistsError{Index: index}
	}

	// The target must be free in the whole namespace, not only among indices
	if snapshot.Taken(index) {
		return nil, &IndexAlreadyExistsError{Index: index}
	}

	plan.Reindex = params.Reindex && plan.ReplacedIndex != ""

	if plan.ReplacedIndex != "" {
		plan.Actions = append(plan.Actions, domain.RemoveAlias(plan.ReplacedIndex, params.Alias))
	}
	plan.Actions = append(plan.Actions, domain.AddAlias(index, params.Alias))

	return plan, nil
}

func containsVersion(versions []int, version int) bool {
	for _, v := range versions {
		if v == version {
			return true
		}
	}
	return false
}
