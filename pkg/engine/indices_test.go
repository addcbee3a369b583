package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

func TestEngine_CreateIndex(t *testing.T) {
	engine := NewEngine()

	body := domain.IndexBody{"settings": map[string]interface{}{"number_of_shards": 1}}
	require.NoError(t, engine.CreateIndex("users__v1", body))
	assert.True(t, engine.IsDirty())

	infos, err := engine.GetIndex("users__v1")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, body, infos[0].Body)
	assert.Empty(t, infos[0].Aliases)
	assert.Equal(t, int64(0), infos[0].DocumentCount)

	err = engine.CreateIndex("users__v1", nil)
	var exists *IndexExistsError
	assert.True(t, errors.As(err, &exists))
	assert.Equal(t, "users__v1", exists.Index)
}

func TestEngine_CreateIndex_InvalidNames(t *testing.T) {
	tests := []struct {
		name  string
		index string
	}{
		{"empty", ""},
		{"dot", "."},
		{"upper case", "Users"},
		{"wildcard", "users*"},
		{"comma", "users,orders"},
		{"leading underscore", "_users"},
		{"leading dash", "-users"},
		{"space", "my users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine()
			err := engine.CreateIndex(tt.index, nil)

			var invalid *InvalidIndexNameError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, "invalid_index_name_exception", invalid.ErrorType())
			assert.Empty(t, engine.ListAliases())
		})
	}
}

func TestEngine_CreateIndex_NameTakenByAlias(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.CreateIndex("users__v1", nil))
	require.NoError(t, engine.UpdateAliases([]domain.AliasAction{domain.AddAlias("users__v1", "users")}))

	err := engine.CreateIndex("users", nil)
	var invalid *InvalidIndexNameError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "already exists as alias")
}

func TestEngine_DeleteIndex(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.CreateIndex("users__v1", nil))
	require.NoError(t, engine.UpdateAliases([]domain.AliasAction{domain.AddAlias("users__v1", "users")}))

	// Aliases are not accepted
	err := engine.DeleteIndex("users")
	var missing *IndexNotFoundError
	assert.True(t, errors.As(err, &missing))

	require.NoError(t, engine.DeleteIndex("users__v1"))
	assert.Empty(t, engine.ListAliases())

	// The alias went away with its only index
	_, err = engine.GetIndex("users")
	assert.True(t, errors.As(err, &missing))
}

func TestEngine_GetIndex_ThroughAlias(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.CreateIndex("logs__v2", nil))
	require.NoError(t, engine.CreateIndex("logs__v1", nil))
	require.NoError(t, engine.UpdateAliases([]domain.AliasAction{
		domain.AddAlias("logs__v1", "logs"),
		domain.AddAlias("logs__v2", "logs"),
	}))

	infos, err := engine.GetIndex("logs")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "logs__v1", infos[0].Name)
	assert.Equal(t, "logs__v2", infos[1].Name)
	assert.Equal(t, []string{"logs"}, infos[0].Aliases)
}
