// Package migration moves an alias from one index generation to the next
// without downtime: it creates the new generation, copies the data of the
// generation it replaces and swaps the alias in one atomic request.
package migration

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/lock"
)

// DefaultLockTTL bounds how long a migration lease is held when no TTL is configured
const DefaultLockTTL = 10 * time.Minute

// LockKeyPrefix prefixes the alias in migration lease keys
const LockKeyPrefix = "esmigrate:migration:"

// Planner migrates one alias to a new index generation
type Planner struct {
	client  domain.EngineClient
	alias   string
	prefix  string
	body    domain.IndexBody
	version int

	locker  lock.Locker
	lockTTL time.Duration
}

type PlannerOption func(*Planner)

// WithVersion sets an explicit target version instead of the next free generation
func WithVersion(version int) PlannerOption {
	return func(p *Planner) {
		p.version = version
	}
}

// WithLocker makes Execute hold a lease on the alias for the duration of the migration
func WithLocker(locker lock.Locker) PlannerOption {
	return func(p *Planner) {
		p.locker = locker
	}
}

func WithLockTTL(ttl time.Duration) PlannerOption {
	return func(p *Planner) {
		p.lockTTL = ttl
	}
}

// NewPlanner creates a planner for alias, creating generations named prefix+version with body
func NewPlanner(client domain.EngineClient, alias, prefix string, body domain.IndexBody, options ...PlannerOption) (*Planner, error) {
	p := &Planner{
		client:  client,
		alias:   alias,
		prefix:  prefix,
		body:    body,
		lockTTL: DefaultLockTTL,
	}

	for _, option := range options {
		option(p)
	}

	switch {
	case client == nil:
		return nil, fmt.Errorf("%w: engine client is required", ErrInvalidArgument)
	case alias == "":
		return nil, fmt.Errorf("%w: alias name cannot be empty", ErrInvalidArgument)
	case prefix == "":
		return nil, fmt.Errorf("%w: index prefix cannot be empty", ErrInvalidArgument)
	case p.version < 0:
		return nil, fmt.Errorf("%w: version must be positive, got %d", ErrInvalidArgument, p.version)
	case p.locker != nil && p.lockTTL <= 0:
		return nil, fmt.Errorf("%w: lock TTL must be positive", ErrInvalidArgument)
	}

	return p, nil
}

type executeConfig struct {
	reindex         bool
	replacedVersion *int
}

type ExecuteOption func(*executeConfig)

// WithReindex enables or disables copying the replaced generation (enabled by default)
func WithReindex(enabled bool) ExecuteOption {
	return func(c *executeConfig) {
		c.reindex = enabled
	}
}

// WithoutReindex swaps the alias without copying any documents
func WithoutReindex() ExecuteOption {
	return WithReindex(false)
}

// ReplacingVersion replaces the given live generation instead of the highest one
func ReplacingVersion(version int) ExecuteOption {
	return func(c *executeConfig) {
		c.replacedVersion = &version
	}
}

func (p *Planner) params(options []ExecuteOption) Params {
	config := executeConfig{reindex: true}
	for _, option := range options {
		option(&config)
	}
	return Params{
		Alias:           p.alias,
		Prefix:          p.prefix,
		Version:         p.version,
		ReplacedVersion: config.replacedVersion,
		Reindex:         config.reindex,
	}
}

// Plan reads the engine namespace and returns what Execute would do, without
// changing anything
func (p *Planner) Plan(ctx context.Context, options ...ExecuteOption) (*Plan, error) {
	snapshot, err := TakeSnapshot(ctx, p.client)
	if err != nil {
		return nil, err
	}
	return Decide(snapshot, p.params(options))
}

// Execute runs the migration: create the target generation, reindex the
// replaced generation into it when there is one, then move the alias in a
// single alias update. Validation errors are returned before anything is sent
// to the engine. When an engine call fails the partial result is returned
// with the error.
func (p *Planner) Execute(ctx context.Context, options ...ExecuteOption) (*Result, error) {
	release, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	plan, err := p.Plan(ctx, options...)
	if err != nil {
		log.Printf("WARN: Migration of alias '%s' rejected: %v", p.alias, err)
		return nil, err
	}

	return p.apply(ctx, plan)
}

func (p *Planner) apply(ctx context.Context, plan *Plan) (*Result, error) {
	result := newResult(plan)

	log.Printf("INFO: Creating index '%s' for alias '%s'", plan.Index, plan.Alias)
	response, err := p.client.CreateIndex(ctx, plan.Index, p.body)
	if err != nil {
		log.Printf("ERROR: Creating index '%s' failed: %v", plan.Index, err)
		return result, err
	}
	result.Responses[StepCreateIndex] = response

	if plan.Reindex {
		log.Printf("INFO: Reindexing '%s' into '%s'", plan.ReplacedIndex, plan.Index)
		response, err = p.client.Reindex(ctx, plan.ReindexRequest())
		if err != nil {
			log.Printf("ERROR: Reindexing '%s' into '%s' failed, alias '%s' left on '%s': %v",
				plan.ReplacedIndex, plan.Index, plan.Alias, plan.ReplacedIndex, err)
			return result, err
		}
		result.Responses[StepReindex] = response
	}

	response, err = p.client.UpdateAliases(ctx, plan.Actions)
	if err != nil {
		log.Printf("ERROR: Moving alias '%s' to '%s' failed, index '%s' is left unaliased: %v",
			plan.Alias, plan.Index, plan.Index, err)
		return result, err
	}
	result.Responses[StepUpdateAliases] = response

	if plan.ReplacedIndex != "" {
		log.Printf("INFO: Alias '%s' moved from '%s' to '%s'", plan.Alias, plan.ReplacedIndex, plan.Index)
	} else {
		log.Printf("INFO: Alias '%s' created on '%s'", plan.Alias, plan.Index)
	}
	return result, nil
}

// acquire takes the migration lease when a locker is configured
func (p *Planner) acquire(ctx context.Context) (func(), error) {
	if p.locker == nil {
		return func() {}, nil
	}

	key := LockKeyPrefix + p.alias
	token, err := p.locker.Lock(ctx, key, p.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lease alias '%s': %w", p.alias, err)
	}

	return func() {
		if err := p.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			log.Printf("WARN: Releasing lease on alias '%s' failed: %v", p.alias, err)
		}
	}, nil
}
