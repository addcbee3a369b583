package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

func TestEngine_IndexDocument_InternalVersioning(t *testing.T) {
	engine := newEngineWithIndices(t, "users__v1")

	stored, created, err := engine.IndexDocument("users__v1", "1", domain.Document{"name": "Alice"}, domain.WriteOptions{})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), stored.Version)

	stored, created, err = engine.IndexDocument("users__v1", "1", domain.Document{"name": "Alice B."}, domain.WriteOptions{VersionType: domain.VersionTypeInternal})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(2), stored.Version)

	doc, err := engine.GetDocument("users__v1", "1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", doc.Source["name"])
	assert.Equal(t, int64(2), doc.Version)
}

func TestEngine_IndexDocument_ExternalVersioning(t *testing.T) {
	engine := newEngineWithIndices(t, "users__v1")
	external := func(version int64) domain.WriteOptions {
		return domain.WriteOptions{Version: version, VersionType: domain.VersionTypeExternal}
	}

	stored, _, err := engine.IndexDocument("users__v1", "1", domain.Document{"name": "Alice"}, external(10))
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Version)

	for _, version := range []int64{10, 3} {
		_, _, err = engine.IndexDocument("users__v1", "1", domain.Document{"name": "stale"}, external(version))
		var conflict *VersionConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, int64(10), conflict.Current)
		assert.Equal(t, version, conflict.Provided)
	}

	stored, _, err = engine.IndexDocument("users__v1", "1", domain.Document{"name": "Alice C."}, external(11))
	require.NoError(t, err)
	assert.Equal(t, int64(11), stored.Version)

	_, _, err = engine.IndexDocument("users__v1", "2", domain.Document{}, external(0))
	var illegal *IllegalArgumentError
	assert.True(t, errors.As(err, &illegal))

	_, _, err = engine.IndexDocument("users__v1", "2", domain.Document{}, domain.WriteOptions{VersionType: "force"})
	assert.True(t, errors.As(err, &illegal))
}

func TestEngine_IndexDocument_ThroughAlias(t *testing.T) {
	engine := newEngineWithIndices(t, "users__v1", "users__v2")
	require.NoError(t, engine.UpdateAliases([]domain.AliasAction{domain.AddAlias("users__v1", "users")}))

	stored, _, err := engine.IndexDocument("users", "1", domain.Document{"name": "Alice"}, domain.WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "users__v1", stored.Index)

	// No write target once the alias spans two indices
	require.NoError(t, engine.UpdateAliases([]domain.AliasAction{domain.AddAlias("users__v2", "users")}))
	_, _, err = engine.IndexDocument("users", "2", domain.Document{"name": "Bob"}, domain.WriteOptions{})
	var illegal *IllegalArgumentError
	assert.True(t, errors.As(err, &illegal))

	_, _, err = engine.IndexDocument("orders", "1", domain.Document{}, domain.WriteOptions{})
	var missing *IndexNotFoundError
	assert.True(t, errors.As(err, &missing))
}

func TestEngine_IndexDocument_CopiesSource(t *testing.T) {
	engine := newEngineWithIndices(t, "users__v1")

	source := domain.Document{"name": "Alice"}
	_, _, err := engine.IndexDocument("users__v1", "1", source, domain.WriteOptions{})
	require.NoError(t, err)
	source["name"] = "mutated"

	doc, err := engine.GetDocument("users__v1", "1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc.Source["name"])
}

func TestEngine_GetDocument_Missing(t *testing.T) {
	engine := newEngineWithIndices(t, "users__v1")

	_, err := engine.GetDocument("users__v1", "404")
	var missing *DocumentNotFoundError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "users__v1", missing.Index)
}

func TestEngine_Search(t *testing.T) {
	engine := newEngineWithIndices(t, "logs__v1", "logs__v2")
	require.NoError(t, engine.UpdateAliases([]domain.AliasAction{
		domain.AddAlias("logs__v1", "logs"),
		domain.AddAlias("logs__v2", "logs"),
	}))

	for _, write := range []struct{ index, id string }{
		{"logs__v2", "b"}, {"logs__v1", "z"}, {"logs__v2", "a"},
	} {
		_, _, err := engine.IndexDocument(write.index, write.id, domain.Document{"id": write.id}, domain.WriteOptions{})
		require.NoError(t, err)
	}

	hits, err := engine.Search("logs")
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"logs__v1/z", "logs__v2/a", "logs__v2/b"}, []string{
		hits[0].Index + "/" + hits[0].ID,
		hits[1].Index + "/" + hits[1].ID,
		hits[2].Index + "/" + hits[2].ID,
	})
}
