package migration

import "github.com/adfharrison1/go-esmigrate/pkg/domain"

// Names of the mutating steps, used as keys of Result.Responses
const (
	StepCreateIndex   = "create_index"
	StepReindex       = "reindex"
	StepUpdateAliases = "update_aliases"
)

// Result describes a migration. Responses holds the raw engine response of
// every mutating step that completed; after a failed step it shows exactly
// how far the sequence got.
type Result struct {
	ReplacedIndex string                     `json:"replaced_index,omitempty"`
	Alias         string                     `json:"alias"`
	Index         string                     `json:"index"`
	Version       int                        `json:"version"`
	Responses     map[string]domain.Response `json:"responses"`
}

func newResult(plan *Plan) *Result {
	return &Result{
		ReplacedIndex: plan.ReplacedIndex,
		Alias:         plan.Alias,
		Index:         plan.Index,
		Version:       plan.Version,
		Responses:     make(map[string]domain.Response),
	}
}

// Completed reports whether the named step returned a response
func (r *Result) Completed(step string) bool {
	_, ok := r.Responses[step]
	return ok
}
