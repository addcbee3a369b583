package engine

import (
	"context"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// LocalClient exposes an in-process Engine as a domain.EngineClient
type LocalClient struct {
	engine *Engine
}

// NewLocalClient creates a client backed directly by engine
func NewLocalClient(engine *Engine) *LocalClient {
	return &LocalClient{engine: engine}
}

// ListAliases returns the engine's alias map
func (c *LocalClient) ListAliases(ctx context.Context) (domain.AliasMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.engine.ListAliases(), nil
}

// CreateIndex creates an index
func (c *LocalClient) CreateIndex(ctx context.Context, name string, body domain.IndexBody) (domain.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.engine.CreateIndex(name, body); err != nil {
		return nil, err
	}
	return CreateIndexResponse(name), nil
}

// Reindex copies documents between indices
func (c *LocalClient) Reindex(ctx context.Context, req domain.ReindexRequest) (domain.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stats, err := c.engine.Reindex(req)
	if err != nil {
		return nil, err
	}
	return ReindexResponse(stats), nil
}

// UpdateAliases applies an atomic alias batch
func (c *LocalClient) UpdateAliases(ctx context.Context, actions []domain.AliasAction) (domain.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.engine.UpdateAliases(actions); err != nil {
		return nil, err
	}
	return AcknowledgedResponse(), nil
}

var _ domain.EngineClient = (*LocalClient)(nil)
