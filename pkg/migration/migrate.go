package migration

import (
	"context"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Migrate moves alias to its next generation using the default "<alias>__v"
// prefix, reindexing from the current generation
func Migrate(ctx context.Context, client domain.EngineClient, alias string, body domain.IndexBody) (*Result, error) {
	return MigrateVersion(ctx, client, alias, body, 0)
}

// MigrateVersion is Migrate with an explicit target version; zero picks the next generation
func MigrateVersion(ctx context.Context, client domain.EngineClient, alias string, body domain.IndexBody, version int) (*Result, error) {
	planner, err := NewPlanner(client, alias, DefaultPrefix(alias), body, WithVersion(version))
	if err != nil {
		return nil, err
	}
	return planner.Execute(ctx)
}
