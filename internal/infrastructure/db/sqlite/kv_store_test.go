package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "dash.db"))
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.Get(ctx, "patients")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "patients", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "patients", []byte(`[{"id":"1"}]`)))

	v, found, err := s.Get(ctx, "patients")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, string(v))

	require.NoError(t, s.Delete(ctx, "patients"))
	require.NoError(t, s.Delete(ctx, "patients"))
	_, found, err = s.Get(ctx, "patients")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, s.Ping(ctx))
}

func TestKVStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dash.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "current-user", []byte(`{"id":1}`)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	v, found, err := s.Get(ctx, "current-user")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":1}`, string(v))
}
